package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/stordash/internal/metrics"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Nothing is focused in static output, so the selection looks like any
	// other row.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
// This is for CLI output (not TUI), producing a simple formatted table.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// HealthRow is one line of 'stordash status'.
type HealthRow struct {
	OK     bool
	Target string // provider or endpoint
	Mode   string
	Detail string // device count, latency or error
}

// RenderHealthTable renders provider health checks.
func RenderHealthTable(rows []HealthRow) string {
	if len(rows) == 0 {
		return "No providers configured"
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)

	var b strings.Builder
	b.WriteString(headerStyle.Render("  STATUS   " + PadRight("TARGET", 33) + PadRight("MODE", 11) + "DETAIL"))
	b.WriteString("\n")

	for _, row := range rows {
		icon := SuccessStyle().Render(SymbolComplete)
		detail := MutedStyle().Render(row.Detail)
		if !row.OK {
			icon = ErrorStyle().Render(SymbolFail)
			detail = ErrorStyle().Render(row.Detail)
		}
		b.WriteString("  " + icon + "        " + PadRight(row.Target, 33) + PadRight(row.Mode, 11) + detail + "\n")
	}

	return b.String()
}

// RenderInsights renders the benchmark comparison for one table.
func RenderInsights(title string, insights []metrics.Insight) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n")

	if len(insights) == 0 {
		b.WriteString("  " + MutedStyle().Render("No data to compare yet") + "\n")
		return b.String()
	}

	for _, in := range insights {
		value := metrics.FormatValue(in.Key, in.Value)
		bench := metrics.FormatValue(in.Key, in.Benchmark)
		diff := fmt.Sprintf("%+.1f%%", in.DiffPercent)
		b.WriteString("  " + PadRight(in.Label, 22) +
			PadRight(RenderTier(value, in.Tier), 16) +
			MutedStyle().Render("vs "+bench+" ("+diff+")") + "\n")
	}
	return b.String()
}

// PadRight pads a string to the specified visible width.
func PadRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}

// Truncate shortens s to width visible cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
