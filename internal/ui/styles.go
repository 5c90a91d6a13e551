package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/stordash/internal/metrics"
)

// SuccessStyle renders success text.
func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorSuccess) }

// ErrorStyle renders failures.
func ErrorStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorError) }

// WarningStyle renders warnings.
func WarningStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorWarning) }

// InfoStyle renders informational text.
func InfoStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorInfo) }

// MutedStyle renders secondary text.
func MutedStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorMuted) }

// TierColor maps a comparison tier to a color. Values without a tier use
// the primary text color.
func TierColor(t metrics.Tier) lipgloss.Color {
	switch t {
	case metrics.TierExcellent, metrics.TierAboveAverage:
		return ColorSuccess
	case metrics.TierGood, metrics.TierAverage:
		return ColorWarning
	case metrics.TierPoor, metrics.TierBelowAverage:
		return ColorError
	default:
		return ColorPrimary
	}
}

// TierSymbol returns the marker shown next to a rated value.
func TierSymbol(t metrics.Tier) string {
	switch t {
	case metrics.TierExcellent, metrics.TierAboveAverage:
		return SymbolAbove
	case metrics.TierPoor, metrics.TierBelowAverage:
		return SymbolBelow
	case metrics.TierGood, metrics.TierAverage:
		return SymbolLevel
	default:
		return ""
	}
}

// RenderTier colors text for its tier and appends the tier marker.
func RenderTier(text string, t metrics.Tier) string {
	sym := TierSymbol(t)
	if sym == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(TierColor(t)).Render(text + " " + sym)
}
