package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitLogger_CapturesWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruledeck.log")
	InitLogger(LevelDebug, path)
	defer Close()

	Debug("loading rules")
	Warn("slow response", "ms", 1200)
	Error("load failed")

	warn, errs := GetCounts()
	if warn != 1 || errs != 1 {
		t.Errorf("GetCounts() = %d, %d; want 1, 1", warn, errs)
	}

	entries := GetEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 captured entries, got %d", len(entries))
	}
	if entries[0].Message != "slow response" || entries[1].Message != "load failed" {
		t.Errorf("entries out of order: %+v", entries)
	}

	ClearCounts()
	if warn, errs := GetCounts(); warn != 0 || errs != 0 {
		t.Errorf("counts not cleared: %d, %d", warn, errs)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestRecentBuffer_Wraps(t *testing.T) {
	b := newRecentBuffer(2)
	b.add(LogEntry{Message: "a"})
	b.add(LogEntry{Message: "b"})
	b.add(LogEntry{Message: "c"})

	got := b.all()
	if len(got) != 2 || got[0].Message != "b" || got[1].Message != "c" {
		t.Errorf("all() = %+v, want [b c]", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
