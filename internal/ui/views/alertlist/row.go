package alertlist

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-wordwrap"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/ui/styles"
)

// Toggle affordances.
const (
	PauseIcon = "⏸"
	PlayIcon  = "▶"
	EditIcon  = "✎"
)

// infoIndent aligns the status line and info block under the rule name.
const infoIndent = "    "

// RuleRow renders one rule. It holds no state of its own; the paused flag
// comes from the rule entity.
type RuleRow struct {
	Rule    alerts.Rule
	BaseURL string
}

// NewRuleRow creates a row for r. baseURL prefixes the edit link when set.
func NewRuleRow(r alerts.Rule, baseURL string) RuleRow {
	return RuleRow{Rule: r, BaseURL: baseURL}
}

// Toggle pauses a running rule or resumes a paused one through the rule entity.
func (r RuleRow) Toggle(ctx context.Context) error {
	return r.Rule.TogglePaused(ctx)
}

// ToggleIcon is the pause icon for a running rule and the play icon for a
// paused one.
func (r RuleRow) ToggleIcon() string {
	if r.Rule.IsPaused() {
		return PlayIcon
	}
	return PauseIcon
}

// ToggleHint names what the toggle will do to the rule.
func (r RuleRow) ToggleHint() string {
	if r.Rule.IsPaused() {
		return "Resume"
	}
	return "Pause"
}

// Link returns the edit URL, absolute when a base URL is known.
func (r RuleRow) Link() string {
	if r.BaseURL == "" {
		return r.Rule.EditURL()
	}
	return strings.TrimRight(r.BaseURL, "/") + "/" + r.Rule.EditURL()
}

// StatusLine combines the state icon, state text and age.
func (r RuleRow) StatusLine(now time.Time) string {
	return r.stateLabel() + " for " + r.Rule.StateAgeAt(now)
}

func (r RuleRow) stateLabel() string {
	return r.Rule.StateIcon() + " " + r.Rule.StateText()
}

// HasInfo reports whether the info block is rendered. Any non-empty text
// counts, whitespace included.
func (r RuleRow) HasInfo() bool {
	return r.Rule.Info != ""
}

// infoLines wraps the info text at word boundaries to fit width. Words
// longer than the line are kept whole.
func (r RuleRow) infoLines(width int) []string {
	if !r.HasInfo() {
		return nil
	}
	info := r.Rule.Info
	if limit := width - len(infoIndent); limit > 0 {
		info = wordwrap.WrapString(info, uint(limit))
	}
	return strings.Split(info, "\n")
}

// Lines renders the row: the toggle, name and edit link, then the status
// line, then the info block when the rule has info. The info block is a
// single entry that may span several wrapped lines.
func (r RuleRow) Lines(width int, selected bool, now time.Time) []string {
	if width <= 0 {
		width = 80
	}
	link := r.Link()

	prefix := "  "
	if selected {
		prefix = "> "
	}

	nameWidth := width - runewidth.StringWidth(prefix) - 8
	name := r.Rule.Name
	if nameWidth > 0 && runewidth.StringWidth(name) > nameWidth {
		name = runewidth.Truncate(name, nameWidth, "…")
	}

	nameStyle := styles.RuleNameStyle
	if selected {
		nameStyle = styles.RuleSelectedStyle.Bold(true)
	}

	first := prefix +
		styles.ToggleStyle.Render(r.ToggleIcon()) + " " +
		hyperlink(link, nameStyle.Render(name)) + " " +
		hyperlink(link, styles.MutedStyle.Render(EditIcon))

	label := r.stateLabel()
	status := infoIndent + styles.StateStyle(r.Rule.State).Render(label) +
		styles.RuleAgeStyle.Render(strings.TrimPrefix(r.StatusLine(now), label))

	lines := []string{first, status}

	if info := r.infoLines(width); len(info) > 0 {
		block := make([]string, len(info))
		for i, l := range info {
			block[i] = infoIndent + styles.RuleInfoStyle.Render(l)
		}
		lines = append(lines, strings.Join(block, "\n"))
	}

	return lines
}

// Height returns the number of terminal lines Lines produces at width.
func (r RuleRow) Height(width int) int {
	if width <= 0 {
		width = 80
	}
	return 2 + len(r.infoLines(width))
}

// hyperlink wraps text in an OSC 8 hyperlink.
func hyperlink(url, text string) string {
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}
