package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced clock for tests and replays.
//
// Callbacks only run from within Advance, on the calling goroutine,
// in the order of their due time. Timers due at the same instant as a
// frame run before the frame.
type Fake struct {
	mu       sync.Mutex
	now      time.Duration
	interval time.Duration
	seq      int
	timers   []*fakeTimer
	frames   []func(time.Duration)
}

// NewFake creates a fake clock at time zero that delivers frames
// at the given interval.
func NewFake(interval time.Duration) *Fake {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Fake{interval: interval}
}

type fakeTimer struct {
	clock   *Fake
	due     time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now is the current fake time.
func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{clock: f, due: f.now + d, seq: f.seq, f: fn}
	f.timers = append(f.timers, t)
	return t
}

// RequestFrame schedules fn for the next frame boundary.
func (f *Fake) RequestFrame(fn func(time.Duration)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fn)
}

// Pending returns the number of active timers and requested frames.
func (f *Fake) Pending() (timers, frames int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			timers++
		}
	}
	return timers, len(f.frames)
}

// Advance moves the clock forward by d and runs everything that
// becomes due on the way.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for f.step(target) {
	}

	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// step runs the next due callback(s) up to target.
// It returns false if nothing was due.
func (f *Fake) step(target time.Duration) bool {
	f.mu.Lock()

	f.prune()
	var timer *fakeTimer
	if len(f.timers) > 0 {
		timer = f.timers[0]
	}
	frameDue := time.Duration(-1)
	if len(f.frames) > 0 {
		frameDue = (f.now/f.interval + 1) * f.interval
	}

	switch {
	case timer != nil && timer.due <= target && (frameDue < 0 || timer.due <= frameDue):
		if timer.due > f.now {
			f.now = timer.due
		}
		timer.fired = true
		f.mu.Unlock()
		timer.f()
		return true
	case frameDue >= 0 && frameDue <= target:
		f.now = frameDue
		frames := f.frames
		f.frames = nil
		f.mu.Unlock()
		for _, fn := range frames {
			fn(frameDue)
		}
		return true
	}

	f.mu.Unlock()
	return false
}

// prune drops finished timers and sorts the rest by due time.
// Must be called with the lock held.
func (f *Fake) prune() {
	active := f.timers[:0]
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			active = append(active, t)
		}
	}
	f.timers = active
	sort.Slice(f.timers, func(i, j int) bool {
		if f.timers[i].due == f.timers[j].due {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].due < f.timers[j].due
	})
}
