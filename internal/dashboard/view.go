package dashboard

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/refresh"
	"github.com/rileyhilliard/stordash/internal/table"
	"github.com/rileyhilliard/stordash/internal/ui"
	"github.com/rileyhilliard/stordash/internal/util"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	switch m.ctrl.State() {
	case refresh.StateIdle, refresh.StateLoading:
		return m.renderLoading()
	case refresh.StateError:
		return m.renderError()
	}

	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewCompare:
		return m.renderCompareView()
	}

	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
		"",
		m.renderTable(),
		m.renderPagination(),
	}
	if m.showInsights {
		sections = append(sections, m.renderInsights())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the title bar with data freshness and refresh status.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("stordash")

	var stats []string
	if secs := m.SecondsSinceUpdate(); secs >= 0 {
		stats = append(stats, "updated "+formatAgo(secs))
	}
	if m.ctrl.Background() {
		stats = append(stats, "auto "+m.ctrl.Interval().String())
	} else {
		stats = append(stats, "auto refresh paused")
	}
	stats = append(stats, m.ctrl.Mode().String()+" sort")

	line := HeaderStyle.Render(title) + MutedStyle.Render(strings.Join(stats, " · "))
	if status := m.renderStatus(); status != "" {
		line += "  " + status
	}

	divider := lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("━", max(m.width, 10)))
	return line + "\n" + divider
}

// renderStatus renders the refresh indicators: an in-flight background
// refresh, a failed one, or fallback data.
func (m Model) renderStatus() string {
	var parts []string
	if m.ctrl.State() == refresh.StateBackgroundRefreshing {
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorCyan).Render(m.spinner.View()+" refreshing"))
	}
	if err := m.ctrl.BackgroundErr(); err != nil {
		parts = append(parts, WarningStyle.Render(ui.SymbolWarning+" refresh failed, showing older data: "+errors.Reason(err)))
	}
	if m.ctrl.Source(m.ActiveTable().Category) == provider.SourceFallback {
		parts = append(parts, WarningStyle.Render(ui.SymbolWarning+" device API unreachable, showing built-in catalog"))
	}
	return strings.Join(parts, "  ")
}

// renderTabs renders one tab per table, numbered for direct selection.
func (m Model) renderTabs() string {
	tabs := make([]string, len(m.tables))
	for i, cfg := range m.tables {
		label := fmt.Sprintf("%d %s", i+1, cfg.Category.Title())
		if i == m.active {
			tabs[i] = TabActiveStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTable renders the visible page of the active table with the sort
// marker on its header and tier colors on rated cells.
func (m Model) renderTable() string {
	cfg := m.ActiveTable()
	sortCfg := m.ctrl.SortConfig(cfg.Category)

	var b strings.Builder

	header := "  "
	for _, key := range cfg.Columns {
		width := ui.ColumnWidth(key)
		title := ui.ColumnTitle(key)
		if key == sortCfg.Key {
			title += " " + sortArrow(sortCfg.Direction)
			header += SortedColumnStyle.Render(ui.PadRight(title, width))
			continue
		}
		header += ColumnHeaderStyle.Render(ui.PadRight(title, width))
	}
	b.WriteString(header + "\n")

	rows := m.ctrl.VisibleRows(cfg.Category)
	if len(rows) == 0 {
		b.WriteString("  " + MutedStyle.Render("No devices to show") + "\n")
	}
	for i, rec := range rows {
		b.WriteString(m.renderRow(cfg, rec, i == m.selected) + "\n")
	}

	if m.ctrl.Loading(cfg.Category) {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(ColorCyan).Render(m.spinner.View()+" sorting by "+ui.ColumnTitle(m.ctrl.RequestedSort(cfg.Category).Key)+"...") + "\n")
	}
	if err := m.ctrl.TableErr(cfg.Category); err != nil {
		b.WriteString("  " + ErrorStyle.Render(ui.SymbolFail+" sort failed: "+errors.Reason(err)) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderRow(cfg refresh.TableConfig, rec device.Record, selected bool) string {
	cells := make([]string, len(cfg.Columns))
	plain := make([]string, len(cfg.Columns))
	for j, key := range cfg.Columns {
		width := ui.ColumnWidth(key)
		text := ui.FormatCell(key, rec, m.fields)
		style := ValueStyle
		if isRated(cfg, key) {
			tier := m.ctrl.Rate(cfg.Category, key, rec)
			if sym := ui.TierSymbol(tier); sym != "" {
				text += " " + sym
			}
			style = TierStyle(tier)
		}
		plain[j] = ui.PadRight(ui.Truncate(text, width-1), width)
		cells[j] = style.Render(plain[j])
	}

	mark := " "
	if m.isMarked(rec.ID) {
		mark = ui.SymbolSuccess
	}
	if selected {
		return RowSelectedStyle.Render("▸" + mark + strings.Join(plain, ""))
	}
	return " " + lipgloss.NewStyle().Foreground(ColorAccent).Render(mark) + strings.Join(cells, "")
}

// renderPagination renders the page position and sort summary.
func (m Model) renderPagination() string {
	category := m.ActiveTable().Category
	p := m.ctrl.Pagination(category)
	sortCfg := m.ctrl.SortConfig(category)

	page := fmt.Sprintf("Page %d of %d", p.Page, max(p.TotalPages, 1))
	count := util.Count(p.TotalItems, "device", "devices")
	sorted := "sorted by " + ui.ColumnTitle(sortCfg.Key) + " " + sortArrow(sortCfg.Direction)

	parts := []string{page, count, sorted}
	if n := len(m.marked); n > 0 {
		parts = append(parts, fmt.Sprintf("%d marked", n))
	}
	return FooterStyle.Render(strings.Join(parts, " · "))
}

// renderInsights renders the benchmark comparison panel for the active table.
func (m Model) renderInsights() string {
	category := m.ActiveTable().Category
	body := ui.RenderInsights(category.Title()+" vs industry benchmarks", m.ctrl.Insights(category))
	return PanelStyle.Render(strings.TrimRight(body, "\n"))
}

// renderFooter renders the keyboard hints.
func (m Model) renderFooter() string {
	hints := []string{
		"↑↓ select",
		"←→ page",
		"tab table",
		"s sort",
		"o order",
		"enter details",
		"m mark",
		"c compare",
		"i insights",
		"r refresh",
		"? help",
		"q quit",
	}
	return FooterStyle.Render(strings.Join(hints, "  "))
}

// renderLoading renders the blocking load screen.
func (m Model) renderLoading() string {
	text := m.spinner.View() + " Loading storage devices..."
	box := lipgloss.NewStyle().Foreground(ColorCyan).Render(text)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderError renders the full-page error with the retry hint.
func (m Model) renderError() string {
	err := m.ctrl.Err()

	var lines []string
	lines = append(lines, ErrorStyle.Bold(true).Render(ui.SymbolFail+" Couldn't load device data"))
	lines = append(lines, "")
	if err != nil {
		lines = append(lines, ValueStyle.Render(errors.Reason(err)))
		var sdErr *errors.Error
		if stderrors.As(err, &sdErr) && sdErr.Suggestion != "" {
			lines = append(lines, "", LabelStyle.Render(sdErr.Suggestion))
		}
	}
	lines = append(lines, "", MutedStyle.Render("r retry · q quit"))

	box := ErrorBoxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func isRated(cfg refresh.TableConfig, key string) bool {
	return slices.Contains(cfg.Rated, key)
}

func sortArrow(d table.Direction) string {
	if d == table.Asc {
		return ui.SymbolAbove
	}
	return ui.SymbolBelow
}

// formatAgo renders an age in seconds relative to now.
func formatAgo(secs int) string {
	switch {
	case secs < 1:
		return "just now"
	case secs < 60:
		return fmt.Sprintf("%ds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	default:
		return fmt.Sprintf("%dh ago", secs/3600)
	}
}
