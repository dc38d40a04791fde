package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

func TestCountStates(t *testing.T) {
	rules := []alerts.Rule{
		{State: alerts.StateOK},
		{State: alerts.StateAlerting},
		{State: alerts.StateOK},
		{State: alerts.AlertState("weird")},
	}

	got := CountStates(rules)
	want := []StateCount{
		{State: alerts.StateAlerting, Count: 1},
		{State: alerts.StateOK, Count: 2},
		{State: alerts.StateUnknown, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("CountStates() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CountStates()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStateChart_Empty(t *testing.T) {
	chart := NewStateChart("States", 80)
	result := ansi.Strip(chart.View())

	if !strings.Contains(result, "No alert rules") {
		t.Errorf("Empty chart should show placeholder, got: %s", result)
	}
	if !strings.Contains(result, "States") {
		t.Errorf("Chart should contain title, got: %s", result)
	}
}

func TestStateChart_Bars(t *testing.T) {
	chart := NewStateChart("", 80)
	chart.SetRules([]alerts.Rule{
		{State: alerts.StatePaused},
		{State: alerts.StateAlerting},
		{State: alerts.StateAlerting},
	})

	result := ansi.Strip(chart.View())
	for _, want := range []string{"ALERTING", "PAUSED"} {
		if !strings.Contains(result, want) {
			t.Errorf("Chart should contain %q, got:\n%s", want, result)
		}
	}
	if strings.Contains(result, "OK") {
		t.Errorf("Chart should omit empty states, got:\n%s", result)
	}
}

func TestNewStateChart_MinimumWidth(t *testing.T) {
	if c := NewStateChart("", 10); c.width != 40 {
		t.Errorf("width = %d, want 40", c.width)
	}
}

func TestColorBarInLine_KeepsText(t *testing.T) {
	line := "OK ███ 3"
	if got := ansi.Strip(colorBarInLine(line, lipgloss.NewStyle().Bold(true))); got != line {
		t.Errorf("colorBarInLine changed the text: %q", got)
	}
}
