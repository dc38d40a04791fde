package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/ui/styles"
)

// chartStates is the bar order of the state chart.
var chartStates = []alerts.AlertState{
	alerts.StateAlerting,
	alerts.StatePending,
	alerts.StateNoData,
	alerts.StateOK,
	alerts.StatePaused,
	alerts.StateUnknown,
}

// StateCount is the number of rules in one state.
type StateCount struct {
	State alerts.AlertState
	Count int
}

// CountStates tallies rules per state in chart order. States with no rules
// are omitted.
func CountStates(rules []alerts.Rule) []StateCount {
	tally := make(map[alerts.AlertState]int, len(chartStates))
	for _, r := range rules {
		st := r.State
		if !st.IsValid() {
			st = alerts.StateUnknown
		}
		tally[st]++
	}

	counts := make([]StateCount, 0, len(tally))
	for _, st := range chartStates {
		if n := tally[st]; n > 0 {
			counts = append(counts, StateCount{State: st, Count: n})
		}
	}
	return counts
}

// StateChart renders a horizontal bar per state, colored like the state.
type StateChart struct {
	title string
	width int
	items []StateCount
}

// NewStateChart creates a chart of the given width (minimum 40).
func NewStateChart(title string, width int) *StateChart {
	if width < 40 {
		width = 40
	}
	return &StateChart{title: title, width: width}
}

// SetRules recounts the chart from rules.
func (c *StateChart) SetRules(rules []alerts.Rule) {
	c.items = CountStates(rules)
}

// Items returns the current counts.
func (c *StateChart) Items() []StateCount {
	return c.items
}

// View renders the chart.
func (c *StateChart) View() string {
	if len(c.items) == 0 {
		return c.withTitle(styles.MutedStyle.Render("No alert rules"))
	}

	// Colors are applied per line with lipgloss below.
	pterm.DisableColor()
	defer pterm.EnableColor()

	bars := make(pterm.Bars, 0, len(c.items))
	for _, item := range c.items {
		bars = append(bars, pterm.Bar{
			Label: alerts.DisplayFor(item.State).Text,
			Value: item.Count,
		})
	}

	chart, err := pterm.DefaultBarChart.
		WithBars(bars).
		WithHorizontal(true).
		WithShowValue(true).
		WithWidth(c.width - 20).
		Srender()
	if err != nil {
		return c.withTitle(fmt.Sprintf("chart unavailable: %v", err))
	}

	return c.withTitle(c.colorize(chart))
}

func (c *StateChart) withTitle(body string) string {
	if c.title == "" {
		return body
	}
	header := lipgloss.NewStyle().Foreground(styles.ColorAccent).Bold(true).Render(c.title)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

// colorize colors the bar characters of each line by the state named on it.
func (c *StateChart) colorize(chart string) string {
	lines := strings.Split(chart, "\n")
	for i, line := range lines {
		for _, item := range c.items {
			if strings.Contains(line, alerts.DisplayFor(item.State).Text) {
				lines[i] = colorBarInLine(line, styles.StateStyle(item.State))
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// colorBarInLine applies style to each run of bar characters in line.
func colorBarInLine(line string, style lipgloss.Style) string {
	var result, bar strings.Builder
	flush := func() {
		if bar.Len() > 0 {
			result.WriteString(style.Render(bar.String()))
			bar.Reset()
		}
	}

	for _, ch := range line {
		switch ch {
		case '█', '▓', '▒', '░', '▄', '▀', '■':
			bar.WriteRune(ch)
		default:
			flush()
			result.WriteRune(ch)
		}
	}
	flush()
	return result.String()
}
