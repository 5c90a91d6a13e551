package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Check passed
	SymbolFail     = "✗" // Check failed
	SymbolWarning  = "⚠" // Degraded, e.g. serving fallback data
	SymbolPending  = "○" // Not yet loaded
	SymbolProgress = "◐" // Loading
	SymbolComplete = "●" // Healthy
)

// Comparison markers next to rated values.
const (
	SymbolAbove = "▲"
	SymbolBelow = "▼"
	SymbolLevel = "●"
)
