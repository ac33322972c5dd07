// Package timer tracks total and per-stage durations for CLI operations.
package timer

import (
	"sync"
	"time"
)

// Timer tracks elapsed time for a whole operation and for its current stage.
type Timer interface {
	// Start begins timing. Calling Start again restarts both total and stage timing.
	Start()
	// NewStage marks the beginning of a new stage, resetting the stage duration.
	NewStage()
	// GetTiming returns the total elapsed time and the elapsed time of the current stage.
	GetTiming() (time.Duration, time.Duration)
	// Stop freezes the timer so subsequent GetTiming calls return fixed values.
	Stop()
}

// Impl is the default Timer implementation.
type Impl struct {
	mu         sync.Mutex
	now        func() time.Time
	startTime  time.Time
	stageStart time.Time
	stopTime   time.Time
	stopped    bool
}

// Compile-time interface compliance verification.
var _ Timer = (*Impl)(nil)

// New creates a timer backed by the wall clock.
func New() *Impl {
	return NewWithClock(time.Now)
}

// NewWithClock creates a timer using the provided clock function.
func NewWithClock(now func() time.Time) *Impl {
	if now == nil {
		now = time.Now
	}

	return &Impl{now: now}
}

// Start begins timing.
func (t *Impl) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.now()
	t.startTime = current
	t.stageStart = current
	t.stopped = false
}

// NewStage resets the stage start to the current time.
func (t *Impl) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startTime.IsZero() {
		t.startTime = t.now()
	}

	t.stageStart = t.now()
}

// GetTiming returns total and stage durations.
// A timer that was never started reports zero durations.
func (t *Impl) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startTime.IsZero() {
		return 0, 0
	}

	end := t.now()
	if t.stopped {
		end = t.stopTime
	}

	return end.Sub(t.startTime), end.Sub(t.stageStart)
}

// Stop freezes the timer.
func (t *Impl) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	t.stopTime = t.now()
	t.stopped = true
}
