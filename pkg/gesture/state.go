// Package gesture implements the zoom gesture state machine.
//
// The machine is a set of pure transition functions: Next takes the current
// State and one Event and returns the new State together with the Commands
// the caller has to carry out (render a transform, arm or cancel the
// double-tap timer, request an animation frame). It owns no timers, input
// sources or rendering targets, so it can be driven by tests or recordings
// as well as by live input.
package gesture

import (
	"math"
	"time"

	"github.com/akeil/zoom/pkg/geom"
)

const (
	// DefaultDoubleTapWindow is the time in which a second tap counts as a
	// double-tap.
	DefaultDoubleTapWindow = 300 * time.Millisecond
	// DefaultResetDuration is the length of the reset animation.
	DefaultResetDuration = 100 * time.Millisecond
)

// Config holds the parameters the transition functions depend on.
type Config struct {
	AllowRotation bool
	// MinZoom and MaxZoom are absolute magnification bounds.
	// A zero MaxZoom means no upper bound.
	MinZoom       float64
	MaxZoom       float64
	ResetDuration time.Duration
}

// DefaultConfig allows rotation and does not limit the magnification.
func DefaultConfig() Config {
	return Config{
		AllowRotation: true,
		MaxZoom:       math.Inf(1),
		ResetDuration: DefaultResetDuration,
	}
}

func (c Config) bounds() geom.Bounds {
	return geom.Bounds{Min: c.MinZoom, Max: c.MaxZoom}
}

func (c Config) resetDuration() time.Duration {
	if c.ResetDuration <= 0 {
		return DefaultResetDuration
	}
	return c.ResetDuration
}

// Mode is the coarse state of the machine.
type Mode int

const (
	Idle Mode = iota
	SingleTouch
	TwoFingers
	Animating
)

var modeNames = map[Mode]string{
	Idle:        "idle",
	SingleTouch: "single-touch",
	TwoFingers:  "two-fingers",
	Animating:   "animating",
}

func (m Mode) String() string {
	return modeNames[m]
}

// State is the complete gesture session state.
type State struct {
	// Active is the committed transform of all completed sessions.
	Active geom.Transform
	// Resultant is what is currently displayed; Active composed with the
	// incremental transform of the session in progress.
	Resultant geom.Transform
	// Contacts is the number of tracked touch contacts (0, 1 or 2).
	Contacts int
	Src      geom.Pair
	Dest     geom.Pair

	TapPending bool

	Animating bool
	// Generation identifies the current reset animation. Frames carrying
	// another generation are stale and ignored.
	Generation uint64
	Animation  Animation
}

// Animation tracks a running reset.
type Animation struct {
	From    geom.Transform
	Started bool
	Start   time.Duration
}

// NewState returns an idle state with identity transforms.
func NewState() State {
	id := geom.IdentityTransform()
	return State{Active: id, Resultant: id}
}

// Mode derives the coarse state from s.
func (s State) Mode() Mode {
	switch {
	case s.Animating:
		return Animating
	case s.Contacts == 1:
		return SingleTouch
	case s.Contacts >= 2:
		return TwoFingers
	}
	return Idle
}

// Phase tells which kind of touch event produced a snapshot.
type Phase int

const (
	Start Phase = iota
	Move
	End
	Cancel
)

var phaseNames = map[Phase]string{
	Start:  "start",
	Move:   "move",
	End:    "end",
	Cancel: "cancel",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// ParsePhase resolves the name of a phase as produced by String.
func ParsePhase(s string) (Phase, bool) {
	for p, name := range phaseNames {
		if name == s {
			return p, true
		}
	}
	return Start, false
}

// Event is an input to Next.
type Event interface {
	event()
}

// Touch is a snapshot of all active contacts, in surface-local coordinates.
type Touch struct {
	Phase  Phase
	Points []geom.Vector
}

// TapExpired is delivered when the double-tap timer fires.
type TapExpired struct{}

// Frame is an animation frame tick.
type Frame struct {
	Generation uint64
	Time       time.Duration
}

// ResetRequest asks to return to the identity transform.
// Without Animate, the reset is applied immediately.
type ResetRequest struct {
	Animate bool
}

func (Touch) event()        {}
func (TapExpired) event()   {}
func (Frame) event()        {}
func (ResetRequest) event() {}

// Command is a side effect requested by Next.
type Command interface {
	command()
}

// Render displays the given transform.
type Render struct {
	Transform geom.Transform
}

// ArmTap starts the double-tap timer.
type ArmTap struct{}

// CancelTap stops a pending double-tap timer.
type CancelTap struct{}

// RequestFrame asks for the next animation frame for the given generation.
type RequestFrame struct {
	Generation uint64
}

func (Render) command()       {}
func (ArmTap) command()       {}
func (CancelTap) command()    {}
func (RequestFrame) command() {}
