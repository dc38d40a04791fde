package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Rule is an alert rule as exposed by a rule store.
// Values are snapshots; the store replaces them whenever a rule changes.
type Rule struct {
	// ID identifies the rule within a collection.
	ID int64

	// Name is the display name of the rule.
	Name string

	// DashboardURI is the dashboard slug the rule's panel lives on (e.g., "db/web-servers").
	DashboardURI string

	// PanelID is the panel the rule is attached to.
	PanelID int64

	// State is the current evaluation state.
	State AlertState

	// NewStateDate is when the rule entered State.
	NewStateDate time.Time

	// Info is optional free text (execution error or evaluation matches).
	Info string

	store *Store
}

// StateDisplay is how a state is presented: label, glyph and style class.
type StateDisplay struct {
	Text  string
	Icon  string
	Class string
}

// DisplayFor returns the presentation of a rule state.
func DisplayFor(s AlertState) StateDisplay {
	switch s {
	case StateOK:
		return StateDisplay{Text: "OK", Icon: "✓", Class: "alert-state-ok"}
	case StateAlerting:
		return StateDisplay{Text: "ALERTING", Icon: "●", Class: "alert-state-critical"}
	case StateNoData:
		return StateDisplay{Text: "NO DATA", Icon: "?", Class: "alert-state-warning"}
	case StatePending:
		return StateDisplay{Text: "PENDING", Icon: "!", Class: "alert-state-warning"}
	case StatePaused:
		return StateDisplay{Text: "PAUSED", Icon: "⏸", Class: "alert-state-paused"}
	default:
		return StateDisplay{Text: "UNKNOWN", Icon: "?", Class: "alert-state-unknown"}
	}
}

// IsPaused returns true if the rule is paused.
func (r Rule) IsPaused() bool {
	return r.State == StatePaused
}

// StateText returns the state label (e.g., "ALERTING").
func (r Rule) StateText() string {
	return DisplayFor(r.State).Text
}

// StateIcon returns the state glyph.
func (r Rule) StateIcon() string {
	return DisplayFor(r.State).Icon
}

// StateClass returns the style class for the state.
func (r Rule) StateClass() string {
	return DisplayFor(r.State).Class
}

// StateAge returns how long the rule has been in its state, e.g. "5 minutes".
func (r Rule) StateAge() string {
	return r.StateAgeAt(time.Now())
}

// StateAgeAt is StateAge relative to now.
func (r Rule) StateAgeAt(now time.Time) string {
	if r.NewStateDate.IsZero() {
		return ""
	}
	return strings.TrimSpace(humanize.RelTime(r.NewStateDate, now, "", ""))
}

// EditURL returns the link to the rule's panel editor, relative to the dashboard server.
// The flag order matches the server's routing and must not change.
func (r Rule) EditURL() string {
	return fmt.Sprintf("dashboard/%s?panelId=%d&fullscreen&edit&tab=alert", r.DashboardURI, r.PanelID)
}

// TogglePaused pauses a running rule or resumes a paused one.
// The owning store applies the new state and notifies its subscribers.
func (r Rule) TogglePaused(ctx context.Context) error {
	if r.store == nil {
		return errors.New("rule is not attached to a store")
	}
	return r.store.setPaused(ctx, r.ID, !r.IsPaused())
}

// EvalMatch is one series that matched a rule's condition during evaluation.
type EvalMatch struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// BuildInfo derives the info line of a rule from its evaluation results.
// An execution error wins over a no-data result, which wins over matches.
func BuildInfo(executionError string, noData bool, matches []EvalMatch) string {
	if executionError != "" {
		return "Execution Error: " + executionError
	}
	if noData {
		return "Query returned no data"
	}
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, fmt.Sprintf("%s=%s", m.Metric, humanize.FtoaWithDigits(m.Value, 3)))
	}
	return strings.Join(parts, ", ")
}
