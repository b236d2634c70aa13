// Package clock provides the timer and animation frame primitives
// a Zoom handler depends on.
package clock

import (
	"time"
)

// DefaultFrameInterval is roughly one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running.
	// It returns false if the callback already ran or was stopped.
	Stop() bool
}

// Timers schedules one-shot callbacks.
type Timers interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Scheduler invokes a callback once, on the next animation frame.
// The callback receives a monotonically increasing timestamp.
type Scheduler interface {
	RequestFrame(f func(ts time.Duration))
}

// System implements Timers and Scheduler on top of the runtime timers.
// Callbacks run on their own goroutines.
type System struct {
	start    time.Time
	interval time.Duration
}

// NewSystem creates a clock that delivers frames at the given interval.
// A non-positive interval selects DefaultFrameInterval.
func NewSystem(interval time.Duration) *System {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &System{
		start:    time.Now(),
		interval: interval,
	}
}

// AfterFunc runs f after d.
func (s *System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RequestFrame runs f after one frame interval,
// passing the time elapsed since the clock was created.
func (s *System) RequestFrame(f func(ts time.Duration)) {
	time.AfterFunc(s.interval, func() {
		f(time.Since(s.start))
	})
}
