package styles

import "github.com/charmbracelet/lipgloss"

// Common border styles
var (
	// BorderNormal is the standard border for most UI elements
	BorderNormal = lipgloss.NormalBorder()

	// BorderRounded is used for overlays
	BorderRounded = lipgloss.RoundedBorder()
)

// Page header styles
var (
	// PageTitleStyle renders the breadcrumb title
	PageTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// PageSubTitleStyle renders the section subtitle
	PageSubTitleStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// Filter selector styles
var (
	// FilterLabelStyle is the "State:" label
	FilterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	// FilterOptionStyle is an unselected option
	FilterOptionStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Padding(0, 1)

	// FilterActiveStyle is the selected option
	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSelectedFg).
				Background(ColorSelectedBg).
				Padding(0, 1)
)

// Rule list styles
var (
	// RuleNameStyle is the rule name link
	RuleNameStyle = lipgloss.NewStyle().
			Bold(true)

	// RuleSelectedStyle marks the selected row
	RuleSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorSelectedFg).
				Background(ColorSelectedBg)

	// RuleAgeStyle is the "for 5 minutes" part of the status line
	RuleAgeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// RuleInfoStyle is the optional info line
	RuleInfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	// ToggleStyle is the play/pause affordance
	ToggleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// Status bar styles
var (
	// StatusBarStyle wraps the status bar
	StatusBarStyle = lipgloss.NewStyle().
			Border(BorderNormal).
			BorderForeground(ColorBorder)

	// StatusTitleStyle is for the source description
	StatusTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	// StatusTimeStyle is for the timestamp
	StatusTimeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Footer styles
var (
	// FooterStyle wraps the footer
	FooterStyle = lipgloss.NewStyle().
			Border(BorderNormal).
			BorderForeground(ColorBorder)

	// FooterHintStyle is for keyboard hints
	FooterHintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// FooterCountStyle is for the rule count
	FooterCountStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)
)

// Dialog styles
var (
	// DialogStyle wraps modals
	DialogStyle = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	// DialogTitleStyle is for dialog titles
	DialogTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// Message styles
var (
	// SuccessStyle is for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// WarningStyle is for warning messages
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Help overlay styles
var (
	// HelpTitleStyle is for the help title
	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// HelpSectionStyle is for help section headers
	HelpSectionStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				MarginTop(1)

	// HelpKeyStyle is for keyboard shortcuts
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Width(14)

	// HelpDescStyle is for shortcut descriptions
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// HelpDialogStyle is for the help dialog box
	HelpDialogStyle = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorAccent).
			Padding(1, 2)
)

// Common UI styles
var (
	// MutedStyle is for muted/secondary text
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// AccentStyle is for accented text
	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)
