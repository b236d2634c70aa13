package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/zoom/pkg/geom"
)

const eps = 1e-9

func pts(xy ...float64) []geom.Vector {
	v := make([]geom.Vector, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		v = append(v, geom.Vec(xy[i], xy[i+1]))
	}
	return v
}

// run feeds all events and returns the final state and all commands.
func run(s State, c Config, events ...Event) (State, []Command) {
	var all []Command
	for _, e := range events {
		var cmds []Command
		s, cmds = Next(s, c, e)
		all = append(all, cmds...)
	}
	return s, all
}

func lastRender(t *testing.T, cmds []Command) geom.Transform {
	t.Helper()
	for i := len(cmds) - 1; i >= 0; i-- {
		if r, ok := cmds[i].(Render); ok {
			return r.Transform
		}
	}
	t.Fatal("no render command")
	return geom.Transform{}
}

func assertTransform(t *testing.T, expected, actual geom.Transform) {
	t.Helper()
	e, a := expected.Components(), actual.Components()
	for i := range e {
		assert.InDelta(t, e[i], a[i], eps, "component %d of %v", i, actual)
	}
}

func TestPinchScale(t *testing.T) {
	s, cmds := run(NewState(), DefaultConfig(),
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 200, 0)},
	)

	expected := geom.Transform{A: geom.Uniform(2)}
	assertTransform(t, expected, s.Resultant)
	assertTransform(t, expected, lastRender(t, cmds))
	// preview only
	assert.Equal(t, geom.IdentityTransform(), s.Active)
	assert.Equal(t, TwoFingers, s.Mode())
}

func TestPinchClampMax(t *testing.T) {
	c := DefaultConfig()
	c.MaxZoom = 1.5
	s, _ := run(NewState(), c,
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 200, 0)},
	)
	assert.InDelta(t, 1.5, s.Resultant.Magnification(), eps)
}

func TestClampIsAbsolute(t *testing.T) {
	c := DefaultConfig()
	c.MinZoom = 0.5
	c.MaxZoom = 2
	s, _ := run(NewState(), c,
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 150, 0)},
		Touch{End, nil},
	)
	require.InDelta(t, 1.5, s.Active.Magnification(), eps)

	s, _ = run(s, c,
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 300, 0)},
	)
	assert.InDelta(t, 2, s.Resultant.Magnification(), eps)

	s, _ = run(s, c,
		Touch{Move, pts(0, 0, 1, 0)},
	)
	assert.InDelta(t, 0.5, s.Resultant.Magnification(), eps)
}

func TestPinchRotation(t *testing.T) {
	s, _ := run(NewState(), DefaultConfig(),
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 0, 100)},
	)
	assertTransform(t, geom.Transform{A: geom.Rotation(0, 1)}, s.Resultant)

	c := DefaultConfig()
	c.AllowRotation = false
	s, _ = run(NewState(), c,
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 0, 100)},
	)
	assertTransform(t, geom.IdentityTransform(), s.Resultant)
}

func TestSingleFingerPan(t *testing.T) {
	s, cmds := run(NewState(), DefaultConfig(),
		Touch{Start, pts(10, 10)},
		Touch{Move, pts(50, 30)},
	)

	expected := geom.Translation(geom.Vec(40, 20))
	assert.Equal(t, expected, s.Resultant)
	assert.Equal(t, expected, lastRender(t, cmds))
	assert.Equal(t, SingleTouch, s.Mode())
}

func TestSingleFingerPanIgnoresBounds(t *testing.T) {
	c := DefaultConfig()
	c.MinZoom = 2
	s, _ := run(NewState(), c,
		Touch{Start, pts(10, 10)},
		Touch{Move, pts(50, 30)},
	)
	assert.Equal(t, geom.Translation(geom.Vec(40, 20)), s.Resultant)
}

func TestFinalizeOnCountChange(t *testing.T) {
	s, _ := run(NewState(), DefaultConfig(),
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(10, 10, 210, 10)},
	)
	before := s.Resultant

	// lift the second finger
	s, cmds := Next(s, DefaultConfig(), Touch{End, pts(10, 10)})
	assert.Empty(t, cmds)
	assert.Equal(t, before, s.Active)
	assert.Equal(t, before, s.Resultant)
	assert.Equal(t, 1, s.Contacts)
	assert.Equal(t, geom.Pair{geom.Vec(10, 10), geom.Vec(11, 10)}, s.Src)

	// continue panning with the remaining finger
	s, _ = Next(s, DefaultConfig(), Touch{Move, pts(20, 10)})
	assertTransform(t, geom.Compose(geom.Translation(geom.Vec(10, 0)), before), s.Resultant)
	assert.Equal(t, before, s.Active)

	s, _ = Next(s, DefaultConfig(), Touch{End, nil})
	assert.Equal(t, s.Resultant, s.Active)
	assert.Equal(t, Idle, s.Mode())
}

func TestMoreThanTwoContacts(t *testing.T) {
	s, _ := run(NewState(), DefaultConfig(),
		Touch{Start, pts(0, 0, 100, 0, 50, 50)},
		Touch{Move, pts(0, 0, 200, 0, 70, 70)},
	)
	assert.Equal(t, 2, s.Contacts)
	assertTransform(t, geom.Transform{A: geom.Uniform(2)}, s.Resultant)
}

func TestTapArmsTimer(t *testing.T) {
	s, cmds := Next(NewState(), DefaultConfig(), Touch{Start, pts(5, 5)})
	assert.True(t, s.TapPending)
	assert.Equal(t, []Command{ArmTap{}}, cmds)

	s, cmds = Next(s, DefaultConfig(), TapExpired{})
	assert.False(t, s.TapPending)
	assert.Empty(t, cmds)

	// second finger cancels the tap
	s, _ = Next(NewState(), DefaultConfig(), Touch{Start, pts(5, 5)})
	s, cmds = Next(s, DefaultConfig(), Touch{Start, pts(5, 5, 50, 50)})
	assert.False(t, s.TapPending)
	assert.Equal(t, []Command{CancelTap{}}, cmds)
}

func TestDoubleTapResets(t *testing.T) {
	c := DefaultConfig()
	s, _ := run(NewState(), c,
		Touch{Start, pts(0, 0)},
		Touch{Move, pts(30, 40)},
		Touch{End, nil},
		TapExpired{},
	)
	moved := geom.Translation(geom.Vec(30, 40))
	require.Equal(t, moved, s.Active)

	s, cmds := run(s, c,
		Touch{Start, pts(7, 7)},
		Touch{End, nil},
		Touch{Start, pts(7, 7)},
	)
	assert.True(t, s.Animating)
	assert.Equal(t, Animating, s.Mode())
	assert.Contains(t, cmds, CancelTap{})
	assert.Contains(t, cmds, RequestFrame{s.Generation})
	assert.Equal(t, moved, s.Animation.From)

	gen := s.Generation
	s, cmds = Next(s, c, Frame{gen, 1000 * time.Millisecond})
	assert.Equal(t, moved, lastRender(t, cmds))

	s, cmds = Next(s, c, Frame{gen, 1050 * time.Millisecond})
	assertTransform(t, geom.Translation(geom.Vec(15, 20)), lastRender(t, cmds))
	assert.Contains(t, cmds, RequestFrame{gen})
	assert.Equal(t, moved, s.Active)

	s, cmds = Next(s, c, Frame{gen, 1100 * time.Millisecond})
	assert.Equal(t, []Command{Render{geom.IdentityTransform()}}, cmds)
	assert.False(t, s.Animating)
	assert.Equal(t, geom.IdentityTransform(), s.Active)
	assert.Equal(t, geom.IdentityTransform(), s.Resultant)
}

func TestInputIgnoredWhileAnimating(t *testing.T) {
	c := DefaultConfig()
	s, _ := run(NewState(), c,
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 300, 0)},
		ResetRequest{Animate: true},
	)
	require.True(t, s.Animating)
	frozen := s

	s, cmds := run(s, c,
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 200, 0)},
	)
	assert.Empty(t, cmds)
	assert.Equal(t, frozen.Resultant, s.Resultant)
	assert.Equal(t, frozen.Active, s.Active)

	// after the animation, the next sample starts a fresh session
	s, _ = run(s, c,
		Frame{s.Generation, 0},
		Frame{s.Generation, 200 * time.Millisecond},
	)
	require.False(t, s.Animating)
	s, cmds = Next(s, c, Touch{Move, pts(0, 0, 200, 0)})
	assert.Empty(t, cmds)
	assert.Equal(t, 2, s.Contacts)
	assert.Equal(t, geom.Pair{geom.Vec(0, 0), geom.Vec(200, 0)}, s.Src)
}

func TestResetFinalizesGesture(t *testing.T) {
	s, _ := run(NewState(), DefaultConfig(),
		Touch{Start, pts(0, 0, 100, 0)},
		Touch{Move, pts(0, 0, 300, 0)},
		ResetRequest{Animate: true},
	)
	assertTransform(t, geom.Transform{A: geom.Uniform(3)}, s.Animation.From)
	assertTransform(t, geom.Transform{A: geom.Uniform(3)}, s.Active)
}

func TestResetPreemptsAnimation(t *testing.T) {
	c := DefaultConfig()
	s, _ := run(NewState(), c,
		Touch{Start, pts(0, 0)},
		Touch{Move, pts(100, 0)},
		Touch{End, nil},
		ResetRequest{Animate: true},
	)
	first := s.Generation
	s, _ = run(s, c,
		Frame{first, 0},
		Frame{first, 50 * time.Millisecond},
	)
	halfway := s.Resultant
	assertTransform(t, geom.Translation(geom.Vec(50, 0)), halfway)

	s, cmds := Next(s, c, ResetRequest{Animate: true})
	second := s.Generation
	assert.NotEqual(t, first, second)
	assert.Equal(t, []Command{RequestFrame{second}}, cmds)
	assert.Equal(t, halfway, s.Animation.From)

	// stale frames of the first animation have no effect
	s, cmds = Next(s, c, Frame{first, 60 * time.Millisecond})
	assert.Empty(t, cmds)
	assert.Equal(t, halfway, s.Resultant)

	s, _ = run(s, c,
		Frame{second, 70 * time.Millisecond},
		Frame{second, 170 * time.Millisecond},
	)
	assert.False(t, s.Animating)
	assert.Equal(t, geom.IdentityTransform(), s.Active)
}

func TestResetWithoutAnimation(t *testing.T) {
	s, _ := run(NewState(), DefaultConfig(),
		Touch{Start, pts(0, 0)},
		Touch{Move, pts(100, 0)},
	)
	s, cmds := Next(s, DefaultConfig(), ResetRequest{})
	assert.Equal(t, []Command{Render{geom.IdentityTransform()}}, cmds)
	assert.Equal(t, geom.IdentityTransform(), s.Active)
	assert.Equal(t, geom.IdentityTransform(), s.Resultant)
	assert.False(t, s.Animating)
	assert.Equal(t, Idle, s.Mode())
}

func TestDegeneratePinchNeverNaN(t *testing.T) {
	c := DefaultConfig()
	c.MinZoom = 0.5
	s, cmds := run(NewState(), c,
		Touch{Start, pts(20, 20, 20, 20)},
		Touch{Move, pts(30, 30, 60, 60)},
	)
	for _, v := range lastRender(t, cmds).Components() {
		assert.False(t, math.IsNaN(v))
	}
	assert.Equal(t, geom.Translation(geom.Vec(10, 10)), s.Resultant)
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{Start, Move, End, Cancel} {
		parsed, ok := ParsePhase(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, parsed)
	}
	_, ok := ParsePhase("wiggle")
	assert.False(t, ok)
}
