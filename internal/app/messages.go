package app

import "time"

// StatusBarTickMsg is sent periodically to update the status bar
type StatusBarTickMsg struct {
	Timestamp time.Time
}

// HistoryPrunedMsg reports old pause/resume events removed at startup
type HistoryPrunedMsg struct {
	Deleted int64
	Err     error
}
