package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Title   string // e.g. "Performance"
	Source  string // where the data came from
	Details string // optional trailing text, e.g. "page 1/3"
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the branded header used by the non-interactive
// commands.
func RenderHeader(info HeaderInfo) string {
	brandStyle := lipgloss.NewStyle().
		Foreground(ColorNeonPink).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorNeonCyan)

	dividerStyle := lipgloss.NewStyle().
		Foreground(ColorGlassBorder)

	var output strings.Builder

	output.WriteString(brandStyle.Render("stordash"))
	if info.Title != "" {
		output.WriteString(" ")
		output.WriteString(titleStyle.Render(info.Title))
	}
	output.WriteString("\n")

	var meta []string
	if info.Source != "" {
		meta = append(meta, info.Source)
	}
	if info.Details != "" {
		meta = append(meta, info.Details)
	}
	if len(meta) > 0 {
		output.WriteString(MutedStyle().Render(strings.Join(meta, " | ")))
		output.WriteString("\n")
	}

	output.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}
