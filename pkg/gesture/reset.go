package gesture

import (
	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/geom"
)

// startReset begins an animated return to the identity transform.
//
// A gesture in progress is finalized first. A running animation is
// superseded; it continues from the currently displayed transform.
func startReset(s State) (State, []Command) {
	if !s.Animating {
		s = finalize(s)
	}
	s.Contacts = 0
	s.Animating = true
	s.Generation++
	s.Animation = Animation{From: s.Resultant}
	logging.Debug("Start reset animation #%d from %v", s.Generation, s.Resultant)
	return s, []Command{RequestFrame{s.Generation}}
}

// snap resets to the identity without animation.
func snap(s State) (State, []Command) {
	id := geom.IdentityTransform()
	s.Active = id
	s.Resultant = id
	s.Contacts = 0
	s.Animating = false
	// invalidates frames of an animation that might still be scheduled
	s.Generation++
	s.Animation = Animation{}
	return s, []Command{Render{id}}
}

func frame(s State, c Config, f Frame) (State, []Command) {
	if !s.Animating || f.Generation != s.Generation {
		return s, nil
	}

	if !s.Animation.Started {
		s.Animation.Started = true
		s.Animation.Start = f.Time
	}

	progress := float64(f.Time-s.Animation.Start) / float64(c.resetDuration())
	if progress >= 1 {
		logging.Debug("Reset animation #%d complete", s.Generation)
		return snap(s)
	}

	s.Resultant = geom.Interpolate(s.Animation.From, geom.IdentityTransform(), progress)
	return s, []Command{Render{s.Resultant}, RequestFrame{s.Generation}}
}
