// Package logger provides the process-wide structured logger. Records go to a
// rotating JSON log file; warnings and errors are also kept in memory so the
// TUI can show how many happened.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogEntry is a captured WARN or ERROR record.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Format renders the entry as a single line.
func (e LogEntry) Format() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level.String(), e.Message)
}

// recentBuffer keeps the last N captured entries.
type recentBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	next    int
	full    bool

	warnCount  int
	errorCount int
}

func newRecentBuffer(size int) *recentBuffer {
	return &recentBuffer{entries: make([]LogEntry, size)}
}

func (b *recentBuffer) add(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = e
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.full = true
	}

	if e.Level >= slog.LevelError {
		b.errorCount++
	} else {
		b.warnCount++
	}
}

func (b *recentBuffer) all() []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.full {
		out := make([]LogEntry, b.next)
		copy(out, b.entries[:b.next])
		return out
	}
	out := make([]LogEntry, 0, len(b.entries))
	out = append(out, b.entries[b.next:]...)
	return append(out, b.entries[:b.next]...)
}

func (b *recentBuffer) counts() (warn, err int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.warnCount, b.errorCount
}

func (b *recentBuffer) resetCounts() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.warnCount = 0
	b.errorCount = 0
}

// captureHandler forwards to inner and copies WARN+ records into the buffer.
type captureHandler struct {
	inner  slog.Handler
	recent *recentBuffer
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.recent.add(LogEntry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), recent: h.recent}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), recent: h.recent}
}

var (
	// Log is the global structured logger
	Log *slog.Logger
	// LogPath is the path to the current log file
	LogPath string

	rotator *lumberjack.Logger
	recent  *recentBuffer
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts "debug", "info", "warn" or "error" to a LogLevel.
// Anything else is treated as info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultLogPath returns ~/.config/ruledeck/ruledeck.log.
func DefaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	return filepath.Join(homeDir, ".config", "ruledeck", "ruledeck.log")
}

// InitLogger initializes the global logger with the specified level and optional path.
// If logPath is empty, DefaultLogPath is used.
func InitLogger(level LogLevel, logPath string) {
	if logPath == "" {
		logPath = DefaultLogPath()
	}
	_ = os.MkdirAll(filepath.Dir(logPath), 0755)
	LogPath = logPath

	rotator = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	recent = newRecentBuffer(100)

	handler := &captureHandler{
		inner:  slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level.slogLevel()}),
		recent: recent,
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Close closes the log file
func Close() {
	if rotator != nil {
		rotator.Close()
	}
}

func get() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger {
	return get().With(args...)
}

// GetCounts returns the warnings and errors logged since the last ClearCounts.
func GetCounts() (warn, err int) {
	if recent == nil {
		return 0, 0
	}
	return recent.counts()
}

// ClearCounts resets the warning and error counters.
func ClearCounts() {
	if recent != nil {
		recent.resetCounts()
	}
}

// GetEntries returns the captured entries, oldest first.
func GetEntries() []LogEntry {
	if recent == nil {
		return nil
	}
	return recent.all()
}
