package alerts

import (
	"time"
)

// Event represents a persisted state transition of a rule (stored in SQLite).
type Event struct {
	// ID is the auto-increment primary key.
	ID int64

	// RuleID is the rule that changed.
	RuleID int64

	// PrevState is the state before the transition.
	PrevState AlertState

	// NewState is the state after the transition.
	NewState AlertState

	// Reason says what caused the transition ("pause", "resume", "import").
	Reason string

	// OccurredAt is when the transition happened.
	OccurredAt time.Time
}

// NewEvent creates an event for a transition happening now.
func NewEvent(ruleID int64, prev, next AlertState, reason string) *Event {
	return &Event{
		RuleID:     ruleID,
		PrevState:  prev,
		NewState:   next,
		Reason:     reason,
		OccurredAt: time.Now(),
	}
}

// StateTransition returns a human-readable description of the state change.
func (e *Event) StateTransition() string {
	return e.PrevState.String() + " → " + e.NewState.String()
}
