// Package ui provides terminal output helpers shared by the CLI commands
// and the dashboard.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Above baseline, healthy
//	ColorError     (red)    - Below baseline, failures
//	ColorWarning   (yellow) - Level with baseline, fallback data
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text
//
// ApplyColorMode honours output.color and --no-color; DisableColors forces
// monochrome output.
//
// # Tiers
//
// RenderTier colors a value by its comparison tier and appends a marker
// (▲ above, ● level, ▼ below) so the rating survives monochrome output.
//
// # Tables
//
// DeviceColumns and DeviceRows turn device records into cells;
// RenderSimpleTable draws them with the Bubbles table component.
package ui
