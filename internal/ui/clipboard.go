package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// ClipboardWriter provides cross-platform clipboard access with graceful degradation.
type ClipboardWriter struct {
	available bool
	errMsg    string
}

// NewClipboardWriter creates a new ClipboardWriter and checks availability.
func NewClipboardWriter() *ClipboardWriter {
	cw := &ClipboardWriter{available: !clipboard.Unsupported}
	if !cw.available {
		cw.errMsg = "clipboard tool not found (install xclip, xsel, or wl-clipboard)"
	}
	return cw
}

// Error returns the reason clipboard is unavailable.
func (cw *ClipboardWriter) Error() string {
	return cw.errMsg
}

// Write copies text to the system clipboard.
func (cw *ClipboardWriter) Write(text string) error {
	if !cw.available {
		return fmt.Errorf("clipboard unavailable: %s", cw.errMsg)
	}
	return clipboard.WriteAll(text)
}
