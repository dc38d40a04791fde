// Package ui provides Bubbletea TUI components for ruledeck.
package ui

import (
	"time"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

// Modal messages (views to the app model)

// ShowModalMsg asks the app to open a modal with registered content.
type ShowModalMsg struct {
	Src        string
	ModalClass string
}

// CloseModalMsg closes the open modal.
type CloseModalMsg struct{}

// Store messages

// RulesChangedMsg is delivered when the rule store notifies a change.
type RulesChangedMsg struct{}

// RulesLoadedMsg reports the end of a load.
type RulesLoadedMsg struct {
	Filter alerts.StateFilter
	Error  error
}

// ToggleResultMsg reports the outcome of a pause/resume.
type ToggleResultMsg struct {
	RuleID int64
	Paused bool
	Error  error
}

// Timer messages

// RefreshTickMsg triggers a periodic reload.
type RefreshTickMsg time.Time

// Feedback messages

// ClearToastMsg hides the toast shown at ShownAt.
type ClearToastMsg struct {
	ShownAt time.Time
}
