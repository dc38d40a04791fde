package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/app"
	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/ui/components"
	"github.com/willibrandon/ruledeck/internal/ui/views/alertlist"
)

// ruleJSON is the --json shape of a rule.
type ruleJSON struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DashboardURI string    `json:"dashboard_uri"`
	PanelID      int64     `json:"panel_id"`
	State        string    `json:"state"`
	NewStateDate time.Time `json:"new_state_date"`
	Info         string    `json:"info,omitempty"`
	URL          string    `json:"url"`
}

// newListCmd creates the list subcommand
func newListCmd() *cobra.Command {
	var state string
	var tree bool
	var summary bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print alert rules",
		Long: `Print the alert rules of the configured source.

Examples:
  ruledeck list
  ruledeck list --state alerting
  ruledeck list --tree
  ruledeck list --summary
  ruledeck list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := alerts.ParseFilter(state)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			backend, err := app.OpenBackend(cfg)
			if err != nil {
				return fmt.Errorf("%s", app.FormatSourceError(err))
			}
			defer backend.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store := alerts.NewStore(backend.Source)
			if err := store.LoadRules(ctx, alerts.LoadOptions{State: filter}); err != nil {
				return fmt.Errorf("%s", app.FormatSourceError(err))
			}
			rules := store.Rules()

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				return printRulesJSON(out, rules, backend.BaseURL)
			case summary:
				chart := components.NewStateChart("Alert rules by state", 80)
				chart.SetRules(rules)
				fmt.Fprintln(out, chart.View())
				return nil
			case tree:
				if len(rules) == 0 {
					fmt.Fprintln(out, "No alert rules")
					return nil
				}
				fmt.Fprint(out, components.RenderRuleTree(rules, 100, colorizeState))
				return nil
			default:
				printRules(out, rules, time.Now())
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&state, "state", "all", "state filter (all, ok, not_ok, alerting, no_data, paused)")
	cmd.Flags().BoolVar(&tree, "tree", false, "group rules by dashboard")
	cmd.Flags().BoolVar(&summary, "summary", false, "show a chart of rule counts per state")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}

var stateColors = map[alerts.AlertState]*color.Color{
	alerts.StateOK:       color.New(color.FgGreen),
	alerts.StateAlerting: color.New(color.FgRed, color.Bold),
	alerts.StateNoData:   color.New(color.FgYellow),
	alerts.StatePaused:   color.New(color.FgBlue),
	alerts.StatePending:  color.New(color.FgYellow),
	alerts.StateUnknown:  color.New(color.FgHiBlack),
}

// colorizeState renders text in the color of state. fatih/color drops the
// escapes itself when stdout is not a terminal or NO_COLOR is set.
func colorizeState(state alerts.AlertState, text string) string {
	c, ok := stateColors[state]
	if !ok {
		return text
	}
	return c.Sprint(text)
}

// printRules prints one line per rule: id, state, age, name and dashboard.
func printRules(w io.Writer, rules []alerts.Rule, now time.Time) {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No alert rules")
		return
	}

	for _, r := range rules {
		state := fmt.Sprintf("%-18s", r.StateIcon()+" "+r.StateText())
		fmt.Fprintf(w, "%5d  %s  %-16s  %s  (%s)\n",
			r.ID, colorizeState(r.State, state), r.StateAgeAt(now), r.Name, r.DashboardURI)
		if r.Info != "" {
			fmt.Fprintf(w, "       %s\n", r.Info)
		}
	}
	fmt.Fprintf(w, "\n%d rules\n", len(rules))
}

func printRulesJSON(w io.Writer, rules []alerts.Rule, baseURL string) error {
	out := make([]ruleJSON, 0, len(rules))
	for _, r := range rules {
		out = append(out, ruleJSON{
			ID:           r.ID,
			Name:         r.Name,
			DashboardURI: r.DashboardURI,
			PanelID:      r.PanelID,
			State:        r.State.String(),
			NewStateDate: r.NewStateDate,
			Info:         r.Info,
			URL:          alertlist.NewRuleRow(r, baseURL).Link(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}
