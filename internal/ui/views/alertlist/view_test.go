package alertlist

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/ui"
	"github.com/willibrandon/ruledeck/internal/ui/nav"
	"github.com/willibrandon/ruledeck/internal/ui/query"
)

type pauseCall struct {
	id     int64
	paused bool
}

type fakeSource struct {
	mu         sync.Mutex
	rules      []alerts.Rule
	pauseCalls []pauseCall
	pauseErr   error
}

func (f *fakeSource) ListRules(_ context.Context, filter alerts.StateFilter) ([]alerts.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []alerts.Rule
	for _, r := range f.rules {
		if filter.Matches(r.State) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSource) SetPaused(_ context.Context, id int64, paused bool) (alerts.AlertState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauseCalls = append(f.pauseCalls, pauseCall{id, paused})
	if f.pauseErr != nil {
		return "", f.pauseErr
	}
	if paused {
		return alerts.StatePaused, nil
	}
	return alerts.StateUnknown, nil
}

// recordingStore counts LoadRules calls on top of a real store.
type recordingStore struct {
	*alerts.Store
	mu    sync.Mutex
	loads []alerts.StateFilter
}

func (s *recordingStore) LoadRules(ctx context.Context, opts alerts.LoadOptions) error {
	s.mu.Lock()
	s.loads = append(s.loads, opts.State)
	s.mu.Unlock()
	return s.Store.LoadRules(ctx, opts)
}

type fakeNav struct {
	*nav.Nav
	calls [][2]string
}

func (n *fakeNav) Load(section, page string) {
	n.calls = append(n.calls, [2]string{section, page})
	n.Nav.Load(section, page)
}

func testRules() []alerts.Rule {
	return []alerts.Rule{
		{ID: 1, Name: "cpu high", DashboardURI: "db/servers", PanelID: 2, State: alerts.StateAlerting, Info: "cpu=95"},
		{ID: 2, Name: "disk", DashboardURI: "db/servers", PanelID: 3, State: alerts.StateOK},
		{ID: 3, Name: "queue", DashboardURI: "db/queues", PanelID: 1, State: alerts.StatePaused},
	}
}

func newTestView(t *testing.T, rules []alerts.Rule) (*RuleListView, *recordingStore, *fakeSource, *query.State, *fakeNav) {
	t.Helper()
	src := &fakeSource{rules: rules}
	store := &recordingStore{Store: alerts.NewStore(src)}
	q := query.New()
	n := &fakeNav{Nav: nav.New(nil)}
	v := NewRuleListView(n, q, store, Options{})
	v.SetSize(100, 40)
	t.Cleanup(v.Close)
	return v, store, src, q, n
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewRuleListView_RegistersNavigation(t *testing.T) {
	v, _, _, _, n := newTestView(t, nil)

	require.Len(t, n.calls, 1)
	assert.Equal(t, [2]string{"alerting", "alert-list"}, n.calls[0])
	assert.Contains(t, v.renderHeader(), "Alerting › Alert Rules")
}

func TestOnFilterChange_EachFilterLoadsOnce(t *testing.T) {
	for _, opt := range alerts.FilterOptions {
		t.Run(opt.Value.String(), func(t *testing.T) {
			v, store, _, q, _ := newTestView(t, testRules())

			cmd := v.OnFilterChange(opt.Value)
			require.NotNil(t, cmd)

			got, ok := q.Get(StateKey)
			require.True(t, ok)
			assert.Equal(t, opt.Value.String(), got)

			msg := cmd()
			loaded, ok := msg.(ui.RulesLoadedMsg)
			require.True(t, ok)
			assert.Equal(t, opt.Value, loaded.Filter)

			assert.Equal(t, []alerts.StateFilter{opt.Value}, store.loads)
			assert.Equal(t, opt.Value, store.StateFilter())
		})
	}
}

func TestReload_AbsentKeyUsesAll(t *testing.T) {
	v, store, _, _, _ := newTestView(t, testRules())

	v.Reload()()

	assert.Equal(t, []alerts.StateFilter{alerts.FilterAll}, store.loads)
	assert.Len(t, v.Rows(), 3)
}

func TestReload_InvalidKeyUsesAll(t *testing.T) {
	v, store, _, q, _ := newTestView(t, testRules())
	q.Update(map[string]string{StateKey: "bogus"})

	v.Reload()()

	assert.Equal(t, []alerts.StateFilter{alerts.FilterAll}, store.loads)
}

func TestFilterKeys(t *testing.T) {
	v, store, _, q, _ := newTestView(t, testRules())

	_, cmd := v.Update(keyPress("4"))
	require.NotNil(t, cmd)
	cmd()
	got, _ := q.Get(StateKey)
	assert.Equal(t, "alerting", got)

	_, cmd = v.Update(keyPress("f"))
	cmd()
	got, _ = q.Get(StateKey)
	assert.Equal(t, "no_data", got)

	_, cmd = v.Update(keyPress("F"))
	cmd()
	got, _ = q.Get(StateKey)
	assert.Equal(t, "alerting", got)

	assert.Equal(t, []alerts.StateFilter{alerts.FilterAlerting, alerts.FilterNoData, alerts.FilterAlerting}, store.loads)
}

func TestToggle_CallsRuleOncePerPress(t *testing.T) {
	v, _, src, _, _ := newTestView(t, testRules())
	v.Reload()()

	_, cmd := v.Update(keyPress("p"))
	require.NotNil(t, cmd)
	msg := cmd().(ui.ToggleResultMsg)
	require.NoError(t, msg.Error)
	assert.Equal(t, []pauseCall{{1, true}}, src.pauseCalls)

	row, ok := v.SelectedRow()
	require.True(t, ok)
	assert.True(t, row.Rule.IsPaused())
	assert.Equal(t, PlayIcon, row.ToggleIcon())

	_, cmd = v.Update(keyPress("p"))
	cmd()
	assert.Equal(t, []pauseCall{{1, true}, {1, false}}, src.pauseCalls)
}

func TestToggle_NoRowsIsNoop(t *testing.T) {
	v, _, src, _, _ := newTestView(t, nil)

	_, cmd := v.Update(keyPress("p"))
	assert.Nil(t, cmd)
	assert.Empty(t, src.pauseCalls)
}

func TestShowHowTo(t *testing.T) {
	v, _, _, _, _ := newTestView(t, nil)

	_, cmd := v.Update(keyPress("i"))
	require.NotNil(t, cmd)
	assert.Equal(t, ui.ShowModalMsg{Src: "alert_howto", ModalClass: "confirm-modal"}, cmd())
}

func TestView_EmptyCollectionRendersNoRows(t *testing.T) {
	v, _, _, _, _ := newTestView(t, nil)
	v.Reload()()

	assert.Empty(t, v.Rows())
	assert.Empty(t, v.renderRules())
	assert.NotPanics(t, func() { _ = v.View() })
}

func TestView_RendersRowsInStoreOrder(t *testing.T) {
	v, _, _, _, _ := newTestView(t, testRules())
	v.Reload()()

	out := ansi.Strip(v.View())
	first := strings.Index(out, "cpu high")
	second := strings.Index(out, "disk")
	third := strings.Index(out, "queue")
	require.True(t, first >= 0 && second >= 0 && third >= 0, out)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Contains(t, out, "3 rules")
}

func TestView_StoreChangeMessage(t *testing.T) {
	v, _, _, _, _ := newTestView(t, testRules())

	done := make(chan tea.Msg, 1)
	go func() { done <- waitForStoreChange(v.sub)() }()

	v.Reload()()

	select {
	case msg := <-done:
		assert.IsType(t, ui.RulesChangedMsg{}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no store change delivered")
	}
}

func TestHelpMode(t *testing.T) {
	v, _, _, _, _ := newTestView(t, nil)

	v.Update(keyPress("h"))
	assert.True(t, v.IsInputMode())
	help := ansi.Strip(v.View())
	assert.Contains(t, help, "Alert Rules Help")
	assert.Contains(t, help, "Pausing an alert rule prevents it from executing")

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.IsInputMode())
}

func TestFooter_ToggleHintFollowsSelection(t *testing.T) {
	v, _, _, _, _ := newTestView(t, testRules())
	v.Reload()()

	assert.Contains(t, ansi.Strip(v.renderFooter()), "[space/p]pause")

	// The third rule is paused.
	v.Update(keyPress("G"))
	assert.Contains(t, ansi.Strip(v.renderFooter()), "[space/p]resume")
}

func TestToggle_FailureShowsToast(t *testing.T) {
	v, _, src, _, _ := newTestView(t, testRules())
	v.Reload()()
	src.pauseErr = errors.New("permission denied")

	_, cmd := v.Update(keyPress("p"))
	require.NotNil(t, cmd)
	msg := cmd().(ui.ToggleResultMsg)
	require.Error(t, msg.Error)

	_, cmd = v.Update(msg)
	assert.NotNil(t, cmd)
	footer := ansi.Strip(v.renderFooter())
	assert.Contains(t, footer, "Toggle failed")
	assert.Contains(t, footer, "permission denied")
}

func TestRenderRules_WrappedInfoCountsTowardHeight(t *testing.T) {
	rules := testRules()
	rules[0].Info = strings.TrimSpace(strings.Repeat("error while querying the datasource ", 10))
	v, _, _, _, _ := newTestView(t, rules)
	v.Reload()()

	out := ansi.Strip(v.renderRules())
	assert.Contains(t, out, "queue")
	assert.Equal(t, NewRuleRow(rules[0], "").Height(v.width)+4, strings.Count(out, "\n")+1)
}
