// Package alerts provides the alert rule model and the observable rule store
// that the rule list view renders from.
package alerts

import (
	"errors"
	"fmt"
)

var (
	// ErrRuleNotFound is returned when a rule id is not present in a source.
	ErrRuleNotFound = errors.New("alert rule not found")
	// ErrInvalidState is returned when a state or filter string is not recognized.
	ErrInvalidState = errors.New("invalid alert state")
)

// AlertState is the evaluation state stored on a rule.
type AlertState string

const (
	StateOK       AlertState = "ok"
	StateAlerting AlertState = "alerting"
	StateNoData   AlertState = "no_data"
	StatePending  AlertState = "pending"
	StatePaused   AlertState = "paused"
	StateUnknown  AlertState = "unknown"
)

// String returns the string representation of the alert state.
func (s AlertState) String() string {
	return string(s)
}

// IsValid returns true if the state is one a source may store on a rule.
func (s AlertState) IsValid() bool {
	switch s {
	case StateOK, StateAlerting, StateNoData, StatePending, StatePaused, StateUnknown:
		return true
	default:
		return false
	}
}

// ParseState converts a string to an AlertState.
func ParseState(s string) (AlertState, error) {
	st := AlertState(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return st, nil
}

// StateFilter selects which rules a load returns.
// FilterAll is a pseudo-category and never appears on a Rule.
type StateFilter string

const (
	FilterAll      StateFilter = "all"
	FilterOK       StateFilter = "ok"
	FilterNotOK    StateFilter = "not_ok"
	FilterAlerting StateFilter = "alerting"
	FilterNoData   StateFilter = "no_data"
	FilterPaused   StateFilter = "paused"
)

// FilterOption is one entry of the filter selector.
type FilterOption struct {
	Text  string
	Value StateFilter
}

// FilterOptions lists the selectable filters in display order.
var FilterOptions = []FilterOption{
	{Text: "All", Value: FilterAll},
	{Text: "OK", Value: FilterOK},
	{Text: "Not OK", Value: FilterNotOK},
	{Text: "Alerting", Value: FilterAlerting},
	{Text: "No Data", Value: FilterNoData},
	{Text: "Paused", Value: FilterPaused},
}

// String returns the string representation of the filter.
func (f StateFilter) String() string {
	return string(f)
}

// IsValid returns true if f is one of the six selector values.
func (f StateFilter) IsValid() bool {
	return f.Index() >= 0
}

// Index returns the position of f in FilterOptions, or -1.
func (f StateFilter) Index() int {
	for i, opt := range FilterOptions {
		if opt.Value == f {
			return i
		}
	}
	return -1
}

// Text returns the selector label for f.
func (f StateFilter) Text() string {
	if i := f.Index(); i >= 0 {
		return FilterOptions[i].Text
	}
	return string(f)
}

// Matches reports whether a rule in state s is selected by f.
// not_ok covers every state that needs attention.
func (f StateFilter) Matches(s AlertState) bool {
	switch f {
	case FilterAll:
		return true
	case FilterNotOK:
		return s == StateAlerting || s == StateNoData || s == StatePending
	default:
		return string(f) == string(s)
	}
}

// ParseFilter converts a string to a StateFilter. An empty string yields FilterAll.
func ParseFilter(s string) (StateFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := StateFilter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: filter %q", ErrInvalidState, s)
	}
	return f, nil
}
