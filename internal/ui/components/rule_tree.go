// Package components provides reusable UI components for ruledeck.
package components

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/xlab/treeprint"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

// RenderRuleTree renders rules grouped by dashboard as an ASCII tree, in
// first-seen dashboard order. colorize styles each node by the rule state
// and may be nil. Returns an empty string if there are no rules.
func RenderRuleTree(rules []alerts.Rule, width int, colorize func(alerts.AlertState, string) string) string {
	if len(rules) == 0 {
		return ""
	}

	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("Alert Rules (%d)", len(rules)))

	var order []string
	byDashboard := make(map[string][]alerts.Rule)
	for _, r := range rules {
		if _, ok := byDashboard[r.DashboardURI]; !ok {
			order = append(order, r.DashboardURI)
		}
		byDashboard[r.DashboardURI] = append(byDashboard[r.DashboardURI], r)
	}

	for _, uri := range order {
		branch := tree.AddBranch(uri)
		for _, r := range byDashboard[uri] {
			node := formatRuleNode(r, width)
			if colorize != nil {
				node = colorize(r.State, node)
			}
			branch.AddNode(node)
		}
	}

	return tree.String()
}

// formatRuleNode formats a tree node: "#12 name [● ALERTING] panel 3".
func formatRuleNode(r alerts.Rule, width int) string {
	suffix := fmt.Sprintf(" [%s %s] panel %d", r.StateIcon(), r.StateText(), r.PanelID)
	prefix := fmt.Sprintf("#%d ", r.ID)

	nameWidth := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(suffix) - 8 // tree characters
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := r.Name
	if runewidth.StringWidth(name) > nameWidth {
		name = runewidth.Truncate(name, nameWidth, "...")
	}
	return prefix + name + suffix
}
