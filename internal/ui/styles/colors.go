// Package styles provides centralized Lipgloss styling for the ruledeck UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

// Color palette. Adaptive colors follow the active theme.
var (
	// Alert state colors
	ColorStateOK       = lipgloss.AdaptiveColor{Light: "28", Dark: "10"}  // Green
	ColorStateCritical = lipgloss.AdaptiveColor{Light: "160", Dark: "9"}  // Red
	ColorStateWarning  = lipgloss.AdaptiveColor{Light: "172", Dark: "11"} // Yellow/orange
	ColorStatePaused   = lipgloss.AdaptiveColor{Light: "25", Dark: "12"}  // Blue
	ColorStateUnknown  = lipgloss.AdaptiveColor{Light: "244", Dark: "8"}  // Gray

	// UI element colors
	ColorBorder  = lipgloss.AdaptiveColor{Light: "250", Dark: "240"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "30", Dark: "6"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "243", Dark: "8"}
	ColorText    = lipgloss.AdaptiveColor{Light: "235", Dark: "7"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "28", Dark: "10"}
	ColorError   = lipgloss.AdaptiveColor{Light: "160", Dark: "9"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "172", Dark: "11"}

	// Selection colors
	ColorSelectedFg = lipgloss.Color("229") // Light yellow text
	ColorSelectedBg = lipgloss.Color("57")  // Purple background
)

// ApplyTheme switches adaptive colors between the "dark" and "light" palettes.
func ApplyTheme(theme string) {
	lipgloss.SetHasDarkBackground(theme != "light")
}

// StateClassColor returns the color for a rule's state class.
func StateClassColor(class string) lipgloss.AdaptiveColor {
	switch class {
	case "alert-state-ok":
		return ColorStateOK
	case "alert-state-critical":
		return ColorStateCritical
	case "alert-state-warning":
		return ColorStateWarning
	case "alert-state-paused":
		return ColorStatePaused
	default:
		return ColorStateUnknown
	}
}

// StateStyle returns a foreground style for an alert state.
func StateStyle(state alerts.AlertState) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StateClassColor(alerts.DisplayFor(state).Class))
}
