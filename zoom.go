// Package zoom implements pinch-zoom, rotate and pan gestures for a
// rendered surface.
//
// A Zoom handler subscribes to a touch input source, derives a similarity
// transform (rotation, uniform scale and translation) from one- or
// two-finger gestures and applies it to the surface. A double-tap animates
// the surface back to its untransformed state.
package zoom

import (
	"sync"
	"time"

	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/clock"
	"github.com/akeil/zoom/pkg/geom"
	"github.com/akeil/zoom/pkg/gesture"
	"github.com/akeil/zoom/pkg/input"
)

// Surface is the rendering target of a zoom handler.
type Surface interface {
	// Origin returns the top-left corner of the surface's layout box in
	// the coordinates used by the input source.
	Origin() geom.Vector
	SetTransform(t geom.Transform)
	SetTransformOrigin(o geom.Vector)
	ClearTransform()
}

// Source delivers touch snapshots.
type Source interface {
	Subscribe(h input.Handler) (cancel func())
}

// Option configures the collaborators of a Zoom handler.
type Option func(z *Zoom)

// WithScheduler sets the animation frame scheduler.
// Without a scheduler, Reset is applied immediately.
func WithScheduler(s clock.Scheduler) Option {
	return func(z *Zoom) {
		z.frames = s
	}
}

// WithTimers sets the timer used for double-tap detection.
// Without timers, a system clock is used.
func WithTimers(t clock.Timers) Option {
	return func(z *Zoom) {
		z.timers = t
	}
}

// Zoom binds the gesture state machine to one surface and one input source.
//
// All methods and callbacks are serialized; Zoom is safe for concurrent use.
type Zoom struct {
	cfg     Config
	surface Surface
	frames  clock.Scheduler
	timers  clock.Timers

	mu        sync.Mutex
	state     gesture.State
	tap       clock.Timer
	tapSeq    uint64
	cancel    func()
	destroyed bool
}

// New creates a zoom handler for the given surface and starts listening
// for touch events.
func New(surface Surface, source Source, cfg Config, opts ...Option) (*Zoom, error) {
	if surface == nil {
		return nil, NewValidationError("no surface")
	}
	if source == nil {
		return nil, NewValidationError("no input source")
	}
	err := cfg.Validate()
	if err != nil {
		return nil, Wrap(err, "invalid config")
	}

	z := &Zoom{
		cfg:     cfg.withDefaults(),
		surface: surface,
		state:   gesture.NewState(),
	}
	for _, opt := range opts {
		opt(z)
	}
	if z.timers == nil {
		z.timers = clock.NewSystem(0)
	}

	surface.SetTransformOrigin(geom.Vec(0, 0))
	z.cancel = source.Subscribe(z.onTouch)
	logging.Debug("Zoom created, config=%+v", z.cfg)
	return z, nil
}

// Destroy stops listening for input, cancels pending timers and
// animations and removes the transform from the surface.
func (z *Zoom) Destroy() {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.destroyed {
		return
	}
	z.destroyed = true

	if z.cancel != nil {
		z.cancel()
		z.cancel = nil
	}
	z.stopTap()
	z.state = gesture.NewState()
	z.surface.ClearTransform()
	logging.Info("Zoom destroyed")
}

// Reset returns to the identity transform; animated if a frame scheduler
// is available, immediately otherwise.
func (z *Zoom) Reset() {
	z.dispatch(gesture.ResetRequest{Animate: z.frames != nil})
}

// Transform returns the currently displayed transform.
func (z *Zoom) Transform() geom.Transform {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.state.Resultant
}

// Active returns the committed transform of all completed gestures.
func (z *Zoom) Active() geom.Transform {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.state.Active
}

// Animating tells whether a reset animation is running.
func (z *Zoom) Animating() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.state.Animating
}

// Mode returns the coarse gesture state.
func (z *Zoom) Mode() gesture.Mode {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.state.Mode()
}

func (z *Zoom) onTouch(s input.Snapshot) {
	// the layout box may move during a gesture, so it is read every time
	o := z.surface.Origin()
	pts := make([]geom.Vector, len(s.Points))
	for i, p := range s.Points {
		pts[i] = geom.Sub(p, o)
	}
	z.dispatch(gesture.Touch{Phase: s.Phase, Points: pts})
}

func (z *Zoom) dispatch(e gesture.Event) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.destroyed {
		return
	}

	z.apply(e)
}

// apply runs one transition and executes its commands.
// Must be called with the lock held.
func (z *Zoom) apply(e gesture.Event) {
	var cmds []gesture.Command
	z.state, cmds = gesture.Next(z.state, z.cfg.gesture(), e)
	for _, c := range cmds {
		z.exec(c)
	}
}

// exec carries out a command. Must be called with the lock held.
func (z *Zoom) exec(c gesture.Command) {
	switch c := c.(type) {
	case gesture.Render:
		z.surface.SetTransform(c.Transform)
	case gesture.ArmTap:
		z.stopTap()
		z.tapSeq++
		seq := z.tapSeq
		z.tap = z.timers.AfterFunc(z.cfg.DoubleTapWindow, func() {
			z.onTapExpired(seq)
		})
	case gesture.CancelTap:
		z.stopTap()
	case gesture.RequestFrame:
		if z.frames == nil {
			// cannot animate; finish right away
			logging.Info("No frame scheduler, reset without animation")
			z.apply(gesture.ResetRequest{})
			return
		}
		gen := c.Generation
		z.frames.RequestFrame(func(ts time.Duration) {
			z.dispatch(gesture.Frame{Generation: gen, Time: ts})
		})
	}
}

func (z *Zoom) onTapExpired(seq uint64) {
	z.mu.Lock()
	defer z.mu.Unlock()
	// a stopped timer may still fire if it was already running
	if z.destroyed || z.tap == nil || seq != z.tapSeq {
		return
	}
	z.tap = nil
	z.apply(gesture.TapExpired{})
}

// stopTap must be called with the lock held.
func (z *Zoom) stopTap() {
	if z.tap != nil {
		z.tap.Stop()
		z.tap = nil
	}
}
