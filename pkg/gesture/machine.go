package gesture

import (
	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/geom"
)

// synthetic offset of the second point for single-contact sessions
var unit = geom.Vec(1, 0)

// Next applies one event to the state.
func Next(s State, c Config, e Event) (State, []Command) {
	switch e := e.(type) {
	case Touch:
		return touch(s, c, e)
	case TapExpired:
		if s.TapPending {
			logging.Debug("Double-tap window expired")
			s.TapPending = false
		}
		return s, nil
	case Frame:
		return frame(s, c, e)
	case ResetRequest:
		if e.Animate {
			return startReset(s)
		}
		return snap(s)
	}
	return s, nil
}

func touch(s State, c Config, e Touch) (State, []Command) {
	var cmds []Command
	n := len(e.Points)
	if n > 2 {
		n = 2
	}

	if e.Phase == Start {
		switch {
		case n == 1 && s.TapPending:
			logging.Debug("Double-tap detected")
			s.TapPending = false
			var reset []Command
			s, reset = startReset(s)
			return s, append([]Command{CancelTap{}}, reset...)
		case n == 1:
			s.TapPending = true
			cmds = append(cmds, ArmTap{})
		case n > 1 && s.TapPending:
			// a second finger makes this a pinch, not a tap
			s.TapPending = false
			cmds = append(cmds, CancelTap{})
		}
	}

	if s.Animating {
		return s, cmds
	}

	if n != s.Contacts {
		s = finalize(s)
		s.Contacts = n
		if n > 0 {
			p := pair(e.Points)
			s.Src, s.Dest = p, p
			logging.Debug("Start %v session at %v", s.Mode(), p)
		}
		return s, cmds
	}

	if n == 0 {
		return s, cmds
	}

	s = preview(s, c, pair(e.Points))
	return s, append(cmds, Render{s.Resultant})
}

// preview computes the resultant transform for the current destination
// without committing it.
func preview(s State, c Config, dest geom.Pair) State {
	s.Dest = dest

	var inc geom.Transform
	if s.Contacts == 1 {
		// the synthetic pair keeps its orientation and length,
		// so this is always a pure translation
		inc = geom.Solve(s.Src, s.Dest, false, geom.Unbounded)
	} else {
		bounds := c.bounds().Rebase(s.Active.Magnification())
		inc = geom.Solve(s.Src, s.Dest, c.AllowRotation, bounds)
	}

	s.Resultant = geom.Compose(inc, s.Active)
	return s
}

// finalize commits the resultant transform.
func finalize(s State) State {
	if s.Contacts > 0 {
		logging.Debug("Finalize %v session, transform=%v", s.Mode(), s.Resultant)
	}
	s.Active = s.Resultant
	return s
}

func pair(points []geom.Vector) geom.Pair {
	if len(points) == 1 {
		return geom.Pair{points[0], geom.Add(points[0], unit)}
	}
	return geom.Pair{points[0], points[1]}
}
