package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/config"
	"github.com/willibrandon/ruledeck/internal/grafana"
	"github.com/willibrandon/ruledeck/internal/ui"
	"github.com/willibrandon/ruledeck/internal/ui/views/alertlist"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Source:  config.SourceSQLite,
		Storage: config.StorageConfig{Path: filepath.Join(t.TempDir(), "rules.db")},
		UI: config.UIConfig{
			Theme:        "dark",
			DateFormat:   "15:04:05",
			InitialState: "all",
		},
	}
}

func newTestModel(t *testing.T, cfg *config.Config, opts Options) *Model {
	t.Helper()
	m, err := New(cfg, opts)
	require.NoError(t, err)
	t.Cleanup(m.Cleanup)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	mm := updated.(Model)
	return &mm
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg := testConfig(t)
	m := newTestModel(t, cfg, Options{})

	require.NotNil(t, m.backend.Rules)
	assert.True(t, strings.HasPrefix(m.backend.Description, "sqlite "))

	err := m.backend.Rules.Upsert(context.Background(), []alerts.Rule{
		{ID: 1, Name: "cpu", DashboardURI: "db/a", PanelID: 1, State: alerts.StateAlerting},
	})
	require.NoError(t, err)

	require.NoError(t, m.store.LoadRules(context.Background(), alerts.LoadOptions{State: alerts.FilterAll}))
	assert.Len(t, m.store.Rules(), 1)
	assert.Contains(t, m.View(), "cpu")
}

func TestNew_StateOverride(t *testing.T) {
	cfg := testConfig(t)
	m := newTestModel(t, cfg, Options{InitialState: "paused"})

	v, ok := m.query.Get(alertlist.StateKey)
	require.True(t, ok)
	assert.Equal(t, "paused", v)
}

func TestNew_InvalidStateOverride(t *testing.T) {
	_, err := New(testConfig(t), Options{InitialState: "pending"})
	assert.Error(t, err)
}

func TestNew_FilterPersistsAcrossRuns(t *testing.T) {
	cfg := testConfig(t)

	m, err := New(cfg, Options{})
	require.NoError(t, err)
	m.ruleList.OnFilterChange(alerts.FilterNoData)
	m.Cleanup()

	m2, err := New(cfg, Options{})
	require.NoError(t, err)
	defer m2.Cleanup()

	v, ok := m2.query.Get(alertlist.StateKey)
	require.True(t, ok)
	assert.Equal(t, "no_data", v)
}

func TestModel_ShowModal(t *testing.T) {
	m := newTestModel(t, testConfig(t), Options{})

	updated, _ := m.Update(ui.ShowModalMsg{Src: "alert_howto", ModalClass: "confirm-modal"})
	mm := updated.(Model)
	require.True(t, mm.modal.IsVisible())
	assert.Equal(t, "alert_howto", mm.modal.Src())
	assert.Contains(t, mm.View(), "Adding an Alert")

	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	mm = updated.(Model)
	assert.False(t, mm.modal.IsVisible())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, testConfig(t), Options{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "Goodbye!\n", updated.(Model).View())
}

func TestModel_DebugPanel(t *testing.T) {
	m := newTestModel(t, testConfig(t), Options{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("D")})
	mm := updated.(Model)
	assert.True(t, mm.debugPanel.IsVisible())

	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	mm = updated.(Model)
	assert.False(t, mm.debugPanel.IsVisible())
}

func TestModel_StatusBarTick(t *testing.T) {
	m := newTestModel(t, testConfig(t), Options{})
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)

	updated, cmd := m.Update(StatusBarTickMsg{Timestamp: ts})
	assert.NotNil(t, cmd)
	assert.Contains(t, updated.(Model).View(), "09:30:00")
}

func TestFormatSourceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", fmt.Errorf("list alerts: %w", &grafana.StatusError{StatusCode: http.StatusUnauthorized}), "Authentication failed"},
		{"api missing", &grafana.StatusError{StatusCode: http.StatusNotFound}, "Alerting API not found"},
		{"rule missing", fmt.Errorf("%w: id 3", alerts.ErrRuleNotFound), "Alert rule not found"},
		{"refused", errors.New("dial tcp 127.0.0.1:3000: connect: connection refused"), "Connection refused"},
		{"timeout", errors.New("context deadline exceeded"), "Timeout"},
		{"sqlite", errors.New("unable to open database file"), "Local database unavailable"},
		{"other", errors.New("boom"), "Rule source error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, FormatSourceError(tt.err), tt.want)
		})
	}
}
