package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	fcolor "github.com/fatih/color"
	"golang.org/x/term"
)

const (
	// spinnerTickInterval is the interval between spinner animation frames.
	spinnerTickInterval = 100 * time.Millisecond

	// clearLine returns the cursor to the line start and erases the line.
	clearLine = "\r\033[K"
)

// getSpinnerFrames returns the spinner animation frames.
func getSpinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

func isSpinnerFrame(r rune) bool {
	for _, frame := range getSpinnerFrames() {
		if []rune(frame)[0] == r {
			return true
		}
	}

	return false
}

// Spinner is a busy indicator for one labeled step.
//
// On a TTY the label is animated in place and replaced by the final status line.
// Otherwise only state changes are printed:
//
//	► NPM install...
//	✔ NPM install
//
// A Spinner is owned by a single step. Stop is safe to defer and is a no-op once
// Succeed or Fail has been called.
type Spinner struct {
	label  string
	writer io.Writer
	isTTY  bool

	mu       sync.Mutex
	frameIdx int
	running  bool
	stop     chan struct{}
	done     chan struct{}
}

// SpinnerOption is a functional option for configuring a Spinner.
type SpinnerOption func(*Spinner)

// WithTTY overrides terminal detection.
func WithTTY(isTTY bool) SpinnerOption {
	return func(s *Spinner) {
		s.isTTY = isTTY
	}
}

// TerminalFile returns the *os.File behind writer, looking through writers that
// expose their destination with Unwrap.
func TerminalFile(writer io.Writer) (*os.File, bool) {
	for writer != nil {
		switch w := writer.(type) {
		case *os.File:
			return w, true
		case interface{ Unwrap() io.Writer }:
			writer = w.Unwrap()
		default:
			return nil, false
		}
	}

	return nil, false
}

// IsTerminal reports whether writer ends in a terminal.
func IsTerminal(writer io.Writer) bool {
	file, ok := TerminalFile(writer)

	return ok && term.IsTerminal(int(file.Fd()))
}

// NewSpinner creates a spinner for label writing to writer (os.Stdout if nil).
func NewSpinner(label string, writer io.Writer, opts ...SpinnerOption) *Spinner {
	if writer == nil {
		writer = os.Stdout
	}

	spinner := &Spinner{
		label:  label,
		writer: writer,
		isTTY:  IsTerminal(writer),
	}

	for _, opt := range opts {
		opt(spinner)
	}

	return spinner
}

// Start shows the busy indicator and returns the spinner for chaining.
func (s *Spinner) Start() *Spinner {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s
	}

	s.running = true

	if !s.isTTY {
		_, _ = fmt.Fprintf(s.writer, "%s%s...\n", symbolActivity, s.label)

		return s
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.drawFrame()

	go s.animate()

	return s
}

// Succeed stops the indicator and prints a success line with text.
func (s *Spinner) Succeed(text string) {
	s.finish(fcolor.New(fcolor.FgGreen).Sprintf("%s%s", symbolSuccess, text))
}

// Fail stops the indicator and prints a failure line with text.
func (s *Spinner) Fail(text string) {
	s.finish(fcolor.New(fcolor.FgRed).Sprintf("%s%s", symbolError, text))
}

// Stop halts the indicator without printing a status line.
func (s *Spinner) Stop() {
	s.finish("")
}

func (s *Spinner) finish(line string) {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()

		return
	}

	s.running = false
	isTTY := s.isTTY
	s.mu.Unlock()

	if isTTY {
		close(s.stop)
		<-s.done

		_, _ = fmt.Fprint(s.writer, clearLine)
	}

	if line != "" {
		_, _ = fmt.Fprintln(s.writer, line)
	}
}

func (s *Spinner) animate() {
	defer close(s.done)

	ticker := time.NewTicker(spinnerTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frameIdx = (s.frameIdx + 1) % len(getSpinnerFrames())
			s.drawFrame()
			s.mu.Unlock()
		}
	}
}

// drawFrame redraws the spinner line. Must be called with mutex held.
func (s *Spinner) drawFrame() {
	frame := getSpinnerFrames()[s.frameIdx]
	_, _ = fcolor.New(fcolor.FgCyan).Fprintf(s.writer, "%s%s %s...", clearLine, frame, s.label)
}
