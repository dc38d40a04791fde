// Package app is the root Bubbletea model: it wires configuration, the rule
// source and store, query state and navigation into the rule list view.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/config"
	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/ui"
	"github.com/willibrandon/ruledeck/internal/ui/components"
	"github.com/willibrandon/ruledeck/internal/ui/nav"
	"github.com/willibrandon/ruledeck/internal/ui/query"
	"github.com/willibrandon/ruledeck/internal/ui/styles"
	"github.com/willibrandon/ruledeck/internal/ui/views/alertlist"
)

// Options are command-line overrides applied on top of the configuration.
type Options struct {
	// InitialState forces the rule filter for this run, e.g. "alerting".
	InitialState string
}

// Model represents the main Bubbletea application model
type Model struct {
	// Configuration
	config  *config.Config
	backend *Backend

	// Shared state
	store *alerts.Store
	query *query.State
	nav   *nav.Nav

	// UI state
	width  int
	height int
	keys   ui.KeyMap

	// UI components
	statusBar  *components.StatusBar
	modal      *components.Modal
	debugPanel *components.DebugPanel

	// Views
	ruleList *alertlist.RuleListView

	// Application state
	quitting bool
	ready    bool
}

// New opens the configured rule source and creates the application model.
func New(cfg *config.Config, opts Options) (*Model, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule source: %w", err)
	}
	m, err := NewWithBackend(cfg, backend, opts)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return m, nil
}

// NewWithBackend creates the application model over an open backend.
func NewWithBackend(cfg *config.Config, backend *Backend, opts Options) (*Model, error) {
	styles.ApplyTheme(cfg.UI.Theme)

	var q *query.State
	if vs := backend.ViewState(); vs != nil {
		q = query.NewPersisted(context.Background(), vs)
	} else {
		q = query.New()
	}

	if opts.InitialState != "" {
		f, err := alerts.ParseFilter(opts.InitialState)
		if err != nil {
			return nil, fmt.Errorf("invalid --state: %w", err)
		}
		q.Update(map[string]string{alertlist.StateKey: f.String()})
	} else if _, ok := q.Get(alertlist.StateKey); !ok && cfg.UI.InitialState != "" && cfg.UI.InitialState != alerts.FilterAll.String() {
		q.Update(map[string]string{alertlist.StateKey: cfg.UI.InitialState})
	}

	store := alerts.NewStore(backend.Source)
	n := nav.New(nil)

	ruleList := alertlist.NewRuleListView(n, q, store, alertlist.Options{
		RefreshInterval: cfg.UI.RefreshInterval,
		BaseURL:         backend.BaseURL,
	})

	statusBar := components.NewStatusBar()
	statusBar.SetSource(backend.Description)
	statusBar.SetDateFormat(cfg.UI.DateFormat)
	statusBar.SetDebug(cfg.Debug)
	statusBar.SetTimestamp(time.Now())

	logger.Info("app: initialized", "source", backend.Description)

	return &Model{
		config:     cfg,
		backend:    backend,
		store:      store,
		query:      q,
		nav:        n,
		keys:       ui.DefaultKeyMap(),
		statusBar:  statusBar,
		modal:      components.NewModal(),
		debugPanel: components.NewDebugPanel(),
		ruleList:   ruleList,
	}, nil
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.ruleList.Init(),
		tickStatusBar(),
		pruneHistory(m.backend.Rules, m.config.Storage.Retention),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetSize(msg.Width)
		m.modal.SetSize(msg.Width, msg.Height)
		m.debugPanel.SetSize(msg.Width, msg.Height)
		m.ruleList.SetSize(msg.Width, msg.Height-1) // Reserve the status bar line
		m.ready = true
		return m, nil

	case ui.ShowModalMsg:
		logger.Debug("app: show modal", "src", msg.Src, "class", msg.ModalClass)
		m.modal.Show(msg.Src, msg.ModalClass)
		return m, nil

	case ui.CloseModalMsg:
		m.modal.Hide()
		return m, nil

	case StatusBarTickMsg:
		m.statusBar.SetTimestamp(msg.Timestamp)
		m.refreshStatus()
		return m, tickStatusBar()

	case HistoryPrunedMsg:
		return m, nil
	}

	// Everything else belongs to the rule list
	_, cmd := m.ruleList.Update(msg)
	m.refreshStatus()
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Overlays consume keys first
	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	if m.debugPanel.IsVisible() {
		var cmd tea.Cmd
		m.debugPanel, cmd = m.debugPanel.Update(msg)
		return m, cmd
	}

	if !m.ruleList.IsInputMode() {
		switch msg.String() {
		case "q":
			return m.quit()
		case "D":
			m.debugPanel.Toggle()
			return m, nil
		}
	}

	_, cmd := m.ruleList.Update(msg)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// refreshStatus copies the store's load state into the status bar.
func (m *Model) refreshStatus() {
	m.statusBar.SetHealth(m.store.Loading(), m.store.Err(), m.store.LoadedAt())
}

// View renders the application UI
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch {
	case m.modal.IsVisible():
		content = m.modal.View()
	case m.debugPanel.IsVisible():
		content = m.debugPanel.View()
	default:
		content = m.ruleList.View()
	}

	var b strings.Builder
	b.WriteString(m.statusBar.View())
	b.WriteString("\n")
	b.WriteString(content)
	return b.String()
}

// Cleanup performs cleanup operations before the application exits
func (m *Model) Cleanup() {
	m.ruleList.Close()
	if err := m.backend.Close(); err != nil {
		logger.Warn("app: failed to close database", "error", err)
	}
}
