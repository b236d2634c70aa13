// Package input delivers touch snapshots to a zoom handler.
//
// Every source publishes the complete set of active contacts with each
// event, in page coordinates. Sources exist for golang.org/x/mobile touch
// events, for browsers connected through a websocket and for recorded
// gestures.
package input

import (
	"sort"
	"sync"

	"github.com/akeil/zoom/pkg/geom"
	"github.com/akeil/zoom/pkg/gesture"
)

// Snapshot lists all active contacts after a touch event.
type Snapshot struct {
	Phase  gesture.Phase
	Points []geom.Vector
}

// Handler receives snapshots.
type Handler func(Snapshot)

// Feed is a Source that passes published snapshots on to its subscribers.
type Feed struct {
	mu       sync.Mutex
	next     int
	handlers map[int]Handler
}

// Subscribe registers h and returns a function that removes it again.
func (f *Feed) Subscribe(h Handler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handlers == nil {
		f.handlers = make(map[int]Handler)
	}
	id := f.next
	f.next++
	f.handlers[id] = h

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

// Subscribers returns the number of registered handlers.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

// Publish sends s to all subscribers, in the order they subscribed.
func (f *Feed) Publish(s Snapshot) {
	f.mu.Lock()
	ids := make([]int, 0, len(f.handlers))
	for id := range f.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]Handler, len(ids))
	for i, id := range ids {
		handlers[i] = f.handlers[id]
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(s)
	}
}
