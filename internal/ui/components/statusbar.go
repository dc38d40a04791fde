package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/ui/styles"
)

// StatusBar represents the status bar component
type StatusBar struct {
	width int

	// Status data
	source     string
	healthy    bool
	loading    bool
	lastError  string
	timestamp  time.Time
	loadedAt   time.Time
	dateFormat string
	debug      bool
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	return &StatusBar{
		dateFormat: "2006-01-02 15:04:05",
	}
}

// SetSize sets the width of the status bar
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetSource sets the rule source description, e.g. "grafana http://localhost:3000".
func (s *StatusBar) SetSource(source string) {
	s.source = source
}

// SetHealth records the outcome of the last load.
func (s *StatusBar) SetHealth(loading bool, err error, loadedAt time.Time) {
	s.loading = loading
	s.loadedAt = loadedAt
	s.healthy = err == nil && !loadedAt.IsZero()
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
}

// SetTimestamp sets the current timestamp
func (s *StatusBar) SetTimestamp(timestamp time.Time) {
	s.timestamp = timestamp
}

// SetDateFormat sets the date format string
func (s *StatusBar) SetDateFormat(format string) {
	if format != "" {
		s.dateFormat = format
	}
}

// SetDebug shows warning/error counters from the logger.
func (s *StatusBar) SetDebug(debug bool) {
	s.debug = debug
}

// View renders the status bar
func (s *StatusBar) View() string {
	var statusIndicator string
	switch {
	case s.loading:
		statusIndicator = styles.WarningStyle.Render("● Loading")
	case s.lastError != "":
		statusIndicator = styles.ErrorStyle.Render("● Error")
	case s.healthy:
		statusIndicator = styles.SuccessStyle.Render("● Connected")
	default:
		statusIndicator = styles.MutedStyle.Render("● Idle")
	}

	source := s.source
	if source == "" {
		source = "N/A"
	}

	parts := []string{
		statusIndicator,
		styles.StatusTimeStyle.Render(s.timestamp.Format(s.dateFormat)),
		styles.StatusTitleStyle.Render(source),
	}

	if !s.loadedAt.IsZero() {
		parts = append(parts, styles.MutedStyle.Render("loaded "+s.loadedAt.Format("15:04:05")))
	}

	if s.debug {
		warnCount, errCount := logger.GetCounts()
		var counts []string
		if warnCount > 0 {
			counts = append(counts, styles.WarningStyle.Render(fmt.Sprintf("⚠ %d", warnCount)))
		}
		if errCount > 0 {
			counts = append(counts, styles.ErrorStyle.Render(fmt.Sprintf("✕ %d", errCount)))
		}
		if len(counts) > 0 {
			parts = append(parts, strings.Join(counts, " "))
		}
	}

	statusLine := strings.Join(parts, " | ")

	if s.width > 0 {
		return lipgloss.NewStyle().
			Width(s.width).
			MaxHeight(1).
			Render(statusLine)
	}
	return statusLine
}

// LastError returns the error text from the last load, if any.
func (s *StatusBar) LastError() string {
	return s.lastError
}
