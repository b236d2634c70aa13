package input

import (
	"sync"

	"golang.org/x/mobile/event/touch"

	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/geom"
	"github.com/akeil/zoom/pkg/gesture"
)

// Touches turns the per-contact events of golang.org/x/mobile into
// snapshots of all active contacts.
//
// Contacts are listed in the order they touched down.
type Touches struct {
	Feed

	mu     sync.Mutex
	order  []touch.Sequence
	points map[touch.Sequence]geom.Vector
}

// NewTouches creates an empty touch tracker.
func NewTouches() *Touches {
	return &Touches{
		points: make(map[touch.Sequence]geom.Vector),
	}
}

// Handle records a touch event and publishes the resulting snapshot.
func (t *Touches) Handle(e touch.Event) {
	p := geom.Vec(float64(e.X), float64(e.Y))

	t.mu.Lock()
	var phase gesture.Phase
	switch e.Type {
	case touch.TypeBegin:
		phase = gesture.Start
		if _, known := t.points[e.Sequence]; !known {
			t.order = append(t.order, e.Sequence)
		}
		t.points[e.Sequence] = p
	case touch.TypeMove:
		phase = gesture.Move
		if _, known := t.points[e.Sequence]; !known {
			t.mu.Unlock()
			logging.Debug("Ignore move for unknown touch sequence %d", e.Sequence)
			return
		}
		t.points[e.Sequence] = p
	case touch.TypeEnd:
		phase = gesture.End
		t.remove(e.Sequence)
	default:
		t.mu.Unlock()
		return
	}
	snap := Snapshot{Phase: phase, Points: t.snapshot()}
	t.mu.Unlock()

	t.Publish(snap)
}

// Active returns the number of contacts currently down.
func (t *Touches) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

func (t *Touches) remove(seq touch.Sequence) {
	delete(t.points, seq)
	for i, s := range t.order {
		if s == seq {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

func (t *Touches) snapshot() []geom.Vector {
	pts := make([]geom.Vector, len(t.order))
	for i, seq := range t.order {
		pts[i] = t.points[seq]
	}
	return pts
}
