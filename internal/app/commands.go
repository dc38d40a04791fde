package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/storage/sqlite"
)

// tickStatusBar creates a command to update the status bar timestamp
func tickStatusBar() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return StatusBarTickMsg{Timestamp: t}
	})
}

// pruneHistory removes pause/resume events older than retention
func pruneHistory(store *sqlite.RuleStore, retention time.Duration) tea.Cmd {
	if store == nil || retention <= 0 {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		deleted, err := store.Prune(ctx, retention)
		if err != nil {
			logger.Warn("app: failed to prune rule history", "error", err)
		} else if deleted > 0 {
			logger.Info("app: pruned rule history", "deleted", deleted, "retention", retention)
		}
		return HistoryPrunedMsg{Deleted: deleted, Err: err}
	}
}
