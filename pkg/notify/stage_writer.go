package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter wraps an io.Writer and inserts a blank line before every
// stage title (a line starting with a pictographic emoji) that follows earlier output.
//
// Usage:
//
//	writer := notify.NewStageSeparatingWriter(cmd.OutOrStdout())
//	cmd.SetOut(writer)
type StageSeparatingWriter struct {
	underlying io.Writer
	hasWritten bool
	mu         sync.Mutex
}

// NewStageSeparatingWriter creates a new StageSeparatingWriter wrapping the given writer.
func NewStageSeparatingWriter(underlying io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{underlying: underlying}
}

// Unwrap returns the wrapped writer.
func (w *StageSeparatingWriter) Unwrap() io.Writer {
	return w.underlying
}

// Write implements io.Writer.
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && isStageTitle(data) {
		_, err := w.underlying.Write([]byte{'\n'})
		if err != nil {
			return 0, fmt.Errorf("write stage separator: %w", err)
		}
	}

	written, err := w.underlying.Write(data)
	if written > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return written, fmt.Errorf("write data: %w", err)
	}

	return written, nil
}

// Reset makes the next title behave as the first output.
func (w *StageSeparatingWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.hasWritten = false
}

// isStageTitle reports whether data starts with a title emoji.
// Title emojis are in the "Other Symbol" (So) category; the status symbols used on
// message and spinner lines are excluded.
func isStageTitle(data []byte) bool {
	firstRune, _ := utf8.DecodeRune(data)
	if firstRune == utf8.RuneError {
		return false
	}

	switch firstRune {
	case '►', '✔', '✗', '⚠', 'ℹ', '⏲':
		return false
	}

	if isSpinnerFrame(firstRune) {
		return false
	}

	return unicode.Is(unicode.So, firstRune)
}
