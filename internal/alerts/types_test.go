package alerts

import (
	"errors"
	"testing"
)

func TestStateFilter_Matches(t *testing.T) {
	tests := []struct {
		filter StateFilter
		state  AlertState
		want   bool
	}{
		{FilterAll, StateOK, true},
		{FilterAll, StatePaused, true},
		{FilterOK, StateOK, true},
		{FilterOK, StateAlerting, false},
		{FilterNotOK, StateAlerting, true},
		{FilterNotOK, StateNoData, true},
		{FilterNotOK, StatePending, true},
		{FilterNotOK, StateOK, false},
		{FilterNotOK, StatePaused, false},
		{FilterAlerting, StateAlerting, true},
		{FilterNoData, StateNoData, true},
		{FilterPaused, StatePaused, true},
		{FilterPaused, StateOK, false},
	}

	for _, tt := range tests {
		if got := tt.filter.Matches(tt.state); got != tt.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", tt.filter, tt.state, got, tt.want)
		}
	}
}

func TestFilterOptions_Order(t *testing.T) {
	want := []StateFilter{FilterAll, FilterOK, FilterNotOK, FilterAlerting, FilterNoData, FilterPaused}
	if len(FilterOptions) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(FilterOptions))
	}
	for i, opt := range FilterOptions {
		if opt.Value != want[i] {
			t.Errorf("option %d = %s, want %s", i, opt.Value, want[i])
		}
		if opt.Value.Index() != i {
			t.Errorf("Index(%s) = %d, want %d", opt.Value, opt.Value.Index(), i)
		}
	}
	if FilterNotOK.Text() != "Not OK" {
		t.Errorf("Text() = %q, want %q", FilterNotOK.Text(), "Not OK")
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	if err != nil || f != FilterAll {
		t.Errorf("ParseFilter(\"\") = %q, %v; want all", f, err)
	}

	f, err = ParseFilter("no_data")
	if err != nil || f != FilterNoData {
		t.Errorf("ParseFilter(no_data) = %q, %v", f, err)
	}

	_, err = ParseFilter("pending")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("pending is not a selector value, expected ErrInvalidState, got %v", err)
	}
}

func TestParseState(t *testing.T) {
	if _, err := ParseState("alerting"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseState("all"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("all is never stored on a rule, expected ErrInvalidState, got %v", err)
	}
}
