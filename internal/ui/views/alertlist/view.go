// Package alertlist provides the alert rule list view: a state filter and
// one row per rule with pause/resume.
package alertlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/ui"
	"github.com/willibrandon/ruledeck/internal/ui/nav"
	"github.com/willibrandon/ruledeck/internal/ui/styles"
)

// Navigation identity and fixed references of the view.
const (
	SectionID  = "alerting"
	PageID     = "alert-list"
	StateKey   = "state"
	HowToSrc   = "alert_howto"
	HowToClass = "confirm-modal"
)

// Navigator registers the current page for the header breadcrumb.
type Navigator interface {
	Load(sectionID, pageID string)
	Model() nav.Model
}

// QueryState is the shared key/value state the filter is kept in.
type QueryState interface {
	Get(key string) (string, bool)
	Update(partial map[string]string)
}

// RuleStore owns the rule collection. *alerts.Store implements it.
type RuleStore interface {
	LoadRules(ctx context.Context, opts alerts.LoadOptions) error
	Rules() []alerts.Rule
	StateFilter() alerts.StateFilter
	Loading() bool
	Err() error
	LoadedAt() time.Time
	Subscribe() <-chan struct{}
	Unsubscribe(ch <-chan struct{})
}

// Options configures the view.
type Options struct {
	// RefreshInterval reloads rules periodically; zero disables it.
	RefreshInterval time.Duration

	// BaseURL prefixes rule links, e.g. the dashboard server root.
	BaseURL string

	// LoadTimeout bounds each load and toggle (default: 15s).
	LoadTimeout time.Duration
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
)

// RuleListView renders the filter selector and the rule rows. It never
// mutates the rule collection itself; it asks the store to reload and
// rules to toggle, then re-renders when the store notifies.
type RuleListView struct {
	width  int
	height int

	nav   Navigator
	query QueryState
	store RuleStore
	opts  Options
	keys  ui.KeyMap
	now   func() time.Time

	mode Mode
	sub  <-chan struct{}

	// Row selection, by index into the store's current rules
	selectedIdx  int
	scrollOffset int

	spinner   spinner.Model
	clipboard *ui.ClipboardWriter
	help      *HelpView

	// Toast
	toastMessage string
	toastError   bool
	toastTime    time.Time
}

// NewRuleListView creates the view and registers its page with nav.
func NewRuleListView(n Navigator, q QueryState, store RuleStore, opts Options) *RuleListView {
	if opts.LoadTimeout == 0 {
		opts.LoadTimeout = 15 * time.Second
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.AccentStyle

	v := &RuleListView{
		nav:       n,
		query:     q,
		store:     store,
		opts:      opts,
		keys:      ui.DefaultKeyMap(),
		now:       time.Now,
		clipboard: ui.NewClipboardWriter(),
		spinner:   s,
	}
	v.help = NewHelpView(v.keys)

	n.Load(SectionID, PageID)
	v.sub = store.Subscribe()
	return v
}

// Init issues the initial load with the current filter, starts listening
// for store changes and schedules the periodic refresh.
func (v *RuleListView) Init() tea.Cmd {
	return tea.Batch(
		v.Reload(),
		waitForStoreChange(v.sub),
		v.spinner.Tick,
		v.scheduleRefresh(),
	)
}

// Close stops listening to the store.
func (v *RuleListView) Close() {
	if v.sub != nil {
		v.store.Unsubscribe(v.sub)
		v.sub = nil
	}
}

// SetSize sets the dimensions of the view.
func (v *RuleListView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.help.SetSize(width, height)
	v.ensureVisible()
}

// IsInputMode returns true when the view consumes keys the app would otherwise handle.
func (v *RuleListView) IsInputMode() bool {
	return v.mode == ModeHelp
}

// CurrentFilter reads the filter from query state; an absent or invalid
// value means all.
func (v *RuleListView) CurrentFilter() alerts.StateFilter {
	raw, ok := v.query.Get(StateKey)
	if !ok {
		return alerts.FilterAll
	}
	f, err := alerts.ParseFilter(raw)
	if err != nil {
		logger.Warn("alertlist: ignoring invalid state filter", "value", raw)
		return alerts.FilterAll
	}
	return f
}

// OnFilterChange stores f in query state and reloads with it.
func (v *RuleListView) OnFilterChange(f alerts.StateFilter) tea.Cmd {
	v.query.Update(map[string]string{StateKey: f.String()})
	v.selectedIdx = 0
	v.scrollOffset = 0
	return v.Reload()
}

// Reload returns a command asking the store to load rules for the current
// filter. Failures are recorded by the store, not handled here.
func (v *RuleListView) Reload() tea.Cmd {
	filter := v.CurrentFilter()
	store := v.store
	timeout := v.opts.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := store.LoadRules(ctx, alerts.LoadOptions{State: filter})
		return ui.RulesLoadedMsg{Filter: filter, Error: err}
	}
}

// ShowHowTo returns a command requesting the how-to modal.
func (v *RuleListView) ShowHowTo() tea.Cmd {
	return func() tea.Msg {
		return ui.ShowModalMsg{Src: HowToSrc, ModalClass: HowToClass}
	}
}

// Rows returns one row per rule currently in the store, in store order.
func (v *RuleListView) Rows() []RuleRow {
	rules := v.store.Rules()
	rows := make([]RuleRow, len(rules))
	for i, r := range rules {
		rows[i] = NewRuleRow(r, v.opts.BaseURL)
	}
	return rows
}

// SelectedRow returns the row under the cursor.
func (v *RuleListView) SelectedRow() (RuleRow, bool) {
	rows := v.Rows()
	if v.selectedIdx < 0 || v.selectedIdx >= len(rows) {
		return RuleRow{}, false
	}
	return rows[v.selectedIdx], true
}

// ToggleSelected returns a command toggling the selected rule.
func (v *RuleListView) ToggleSelected() tea.Cmd {
	row, ok := v.SelectedRow()
	if !ok {
		return nil
	}
	return toggleRow(row, v.opts.LoadTimeout)
}

func toggleRow(row RuleRow, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := row.Toggle(ctx)
		return ui.ToggleResultMsg{RuleID: row.Rule.ID, Paused: !row.Rule.IsPaused(), Error: err}
	}
}

// waitForStoreChange blocks until the store notifies.
func waitForStoreChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ui.RulesChangedMsg{}
	}
}

// scheduleRefresh returns a command for the periodic reload.
func (v *RuleListView) scheduleRefresh() tea.Cmd {
	if v.opts.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(v.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return ui.RefreshTickMsg(t)
	})
}

// Update handles messages for the rule list view.
func (v *RuleListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, v.handleKeyPress(msg)

	case ui.RulesChangedMsg:
		v.clampSelection()
		cmds := []tea.Cmd{waitForStoreChange(v.sub)}
		if v.store.Loading() {
			cmds = append(cmds, v.spinner.Tick)
		}
		return v, tea.Batch(cmds...)

	case ui.RulesLoadedMsg:
		v.clampSelection()
		return v, nil

	case ui.ToggleResultMsg:
		if msg.Error != nil {
			logger.Debug("alertlist: toggle failed", "rule", msg.RuleID, "error", msg.Error)
			return v, v.showToast(fmt.Sprintf("Toggle failed: %v", msg.Error), true)
		}
		return v, nil

	case ui.RefreshTickMsg:
		return v, tea.Batch(v.Reload(), v.scheduleRefresh())

	case ui.ClearToastMsg:
		if msg.ShownAt.Equal(v.toastTime) {
			v.toastMessage = ""
		}
		return v, nil

	case spinner.TickMsg:
		if v.store.Loading() {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}

	case tea.MouseMsg:
		if v.mode == ModeNormal {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				v.moveSelection(-1)
			case tea.MouseButtonWheelDown:
				v.moveSelection(1)
			}
		}

	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
	}

	return v, nil
}

// handleKeyPress handles keyboard input.
func (v *RuleListView) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if v.mode == ModeHelp {
		switch {
		case key.Matches(msg, v.keys.Help), key.Matches(msg, v.keys.CloseDialog), msg.String() == "q":
			v.mode = ModeNormal
		}
		return nil
	}

	switch {
	case key.Matches(msg, v.keys.Down):
		v.moveSelection(1)
	case key.Matches(msg, v.keys.Up):
		v.moveSelection(-1)
	case key.Matches(msg, v.keys.PageDown):
		v.moveSelection(v.visibleRuleCount())
	case key.Matches(msg, v.keys.PageUp):
		v.moveSelection(-v.visibleRuleCount())
	case key.Matches(msg, v.keys.Home):
		v.selectedIdx = 0
		v.scrollOffset = 0
	case key.Matches(msg, v.keys.End):
		v.selectedIdx = max(0, len(v.store.Rules())-1)
		v.ensureVisible()
	case key.Matches(msg, v.keys.Toggle):
		return v.ToggleSelected()
	case key.Matches(msg, v.keys.NextFilter):
		return v.cycleFilter(1)
	case key.Matches(msg, v.keys.PrevFilter):
		return v.cycleFilter(-1)
	case key.Matches(msg, v.keys.PickFilter):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(alerts.FilterOptions) {
			return v.OnFilterChange(alerts.FilterOptions[idx].Value)
		}
	case key.Matches(msg, v.keys.Refresh):
		return v.Reload()
	case key.Matches(msg, v.keys.CopyLink):
		return v.copySelectedLink()
	case key.Matches(msg, v.keys.HowTo):
		return v.ShowHowTo()
	case key.Matches(msg, v.keys.Help):
		v.mode = ModeHelp
	}

	return nil
}

func (v *RuleListView) cycleFilter(delta int) tea.Cmd {
	n := len(alerts.FilterOptions)
	idx := (v.CurrentFilter().Index() + delta + n) % n
	return v.OnFilterChange(alerts.FilterOptions[idx].Value)
}

func (v *RuleListView) copySelectedLink() tea.Cmd {
	row, ok := v.SelectedRow()
	if !ok {
		return nil
	}
	if err := v.clipboard.Write(row.Link()); err != nil {
		return v.showToast(fmt.Sprintf("Copy failed: %v", err), true)
	}
	return v.showToast("Link copied to clipboard", false)
}

// showToast displays a message in the footer for three seconds.
func (v *RuleListView) showToast(message string, isError bool) tea.Cmd {
	shownAt := v.now()
	v.toastMessage = message
	v.toastError = isError
	v.toastTime = shownAt
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ui.ClearToastMsg{ShownAt: shownAt}
	})
}

// View renders the rule list view.
func (v *RuleListView) View() string {
	if v.mode == ModeHelp {
		return v.help.View()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.renderFilterSelector())
	b.WriteString("\n\n")
	b.WriteString(v.renderRules())
	b.WriteString("\n")
	b.WriteString(v.renderFooter())
	return b.String()
}

// renderHeader renders the page header from the navigation model.
func (v *RuleListView) renderHeader() string {
	model := v.nav.Model()
	title := styles.PageTitleStyle.Render(model.Title())
	if model.Section != nil && model.Section.SubTitle != "" {
		title += "  " + styles.PageSubTitleStyle.Render(model.Section.SubTitle)
	}

	howTo := styles.MutedStyle.Render("[i] How to add an alert")
	gap := v.width - lipgloss.Width(title) - lipgloss.Width(howTo)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + howTo
}

// renderFilterSelector renders the six filter options with the current one highlighted.
func (v *RuleListView) renderFilterSelector() string {
	current := v.CurrentFilter()
	parts := []string{styles.FilterLabelStyle.Render("States:")}
	for i, opt := range alerts.FilterOptions {
		label := fmt.Sprintf("%d %s", i+1, opt.Text)
		if opt.Value == current {
			parts = append(parts, styles.FilterActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.FilterOptionStyle.Render(label))
		}
	}
	line := strings.Join(parts, " ")
	if v.store.Loading() {
		line += " " + v.spinner.View()
	}
	return line
}

// renderRules renders the visible rows.
func (v *RuleListView) renderRules() string {
	rows := v.Rows()
	if len(rows) == 0 {
		if v.store.Loading() && v.store.LoadedAt().IsZero() {
			return v.spinner.View() + " Loading alert rules..."
		}
		return ""
	}

	budget := v.listHeight()
	now := v.now()
	var lines []string
	used := 0
	for i := v.scrollOffset; i < len(rows); i++ {
		h := rows[i].Height(v.width)
		if used+h > budget && used > 0 {
			break
		}
		lines = append(lines, rows[i].Lines(v.width, i == v.selectedIdx, now)...)
		used += h
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the footer with hints or the current toast.
func (v *RuleListView) renderFooter() string {
	var hints string
	if v.toastMessage != "" {
		style := styles.SuccessStyle
		if v.toastError {
			style = styles.ErrorStyle
		}
		hints = style.Render(v.toastMessage)
	} else {
		hints = styles.FooterHintStyle.Render(v.footerHints())
	}

	count := styles.FooterCountStyle.Render(fmt.Sprintf("%d rules", len(v.store.Rules())))
	gap := v.width - lipgloss.Width(hints) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	return hints + strings.Repeat(" ", gap) + count
}

// footerHints lists the short key help. The toggle entry names what it will
// do to the selected rule.
func (v *RuleListView) footerHints() string {
	parts := []string{"[j/k]↕"}
	for _, b := range v.keys.ShortHelp() {
		help := b.Help()
		desc := help.Desc
		if help.Key == v.keys.Toggle.Help().Key {
			if row, ok := v.SelectedRow(); ok {
				desc = strings.ToLower(row.ToggleHint())
			}
		}
		parts = append(parts, "["+help.Key+"]"+desc)
	}
	return strings.Join(parts, " ")
}

// listHeight returns the number of lines available for rows.
func (v *RuleListView) listHeight() int {
	// header(1) + filter(1) + blank(1) + footer(1) + separator(1)
	if v.height == 0 {
		return 1 << 30
	}
	return max(2, v.height-5)
}

// visibleRuleCount estimates how many rows fit, assuming two lines per rule.
func (v *RuleListView) visibleRuleCount() int {
	return max(1, v.listHeight()/2)
}

// moveSelection moves the selection by delta rows.
func (v *RuleListView) moveSelection(delta int) {
	v.selectedIdx += delta
	v.clampSelection()
}

func (v *RuleListView) clampSelection() {
	n := len(v.store.Rules())
	if v.selectedIdx >= n {
		v.selectedIdx = n - 1
	}
	if v.selectedIdx < 0 {
		v.selectedIdx = 0
	}
	v.ensureVisible()
}

// ensureVisible adjusts scroll offset to keep selection visible.
func (v *RuleListView) ensureVisible() {
	visible := v.visibleRuleCount()
	if v.selectedIdx < v.scrollOffset {
		v.scrollOffset = v.selectedIdx
	}
	if v.selectedIdx >= v.scrollOffset+visible {
		v.scrollOffset = v.selectedIdx - visible + 1
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}
