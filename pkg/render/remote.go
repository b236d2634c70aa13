package render

import (
	"sync"

	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/geom"
)

// Sender delivers a JSON value to a client, e.g. a websocket connection.
type Sender interface {
	Send(v interface{}) error
}

// Update is the message sent to remote clients on every change.
type Update struct {
	Transform       string `json:"transform"`
	TransformOrigin string `json:"transformOrigin,omitempty"`
}

// Remote is a Style that pushes every change to a client.
//
// Updates are sent from a separate goroutine, so setters never wait for
// the client. If the client is slower than the updates, intermediate
// states are skipped and only the latest one is sent.
// Send errors are logged; the local style is updated regardless.
type Remote struct {
	*Style
	out Sender

	mu      sync.Mutex
	pending *Update
	closed  bool
	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// NewRemote creates a remote style for an element at offset.
// Close must be called to stop the sender.
func NewRemote(out Sender, offset geom.Vector) *Remote {
	r := &Remote{
		Style: NewStyle(offset),
		out:   out,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Remote) SetTransform(t geom.Transform) {
	r.Style.SetTransform(t)
	r.push()
}

func (r *Remote) SetTransformOrigin(o geom.Vector) {
	r.Style.SetTransformOrigin(o)
	r.push()
}

func (r *Remote) ClearTransform() {
	r.Style.ClearTransform()
	r.push()
}

// Close sends the last pending update and stops the sender.
func (r *Remote) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.stop)
	<-r.done
}

func (r *Remote) push() {
	u := Update{
		Transform:       r.Transform(),
		TransformOrigin: r.TransformOrigin(),
	}
	if u.Transform == "" {
		u.Transform = "none"
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		logging.Debug("Remote closed, drop update %v", u.Transform)
		return
	}
	r.pending = &u
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Remote) run() {
	defer close(r.done)
	for {
		select {
		case <-r.wake:
			r.flush()
		case <-r.stop:
			r.flush()
			return
		}
	}
}

func (r *Remote) flush() {
	r.mu.Lock()
	u := r.pending
	r.pending = nil
	r.mu.Unlock()
	if u == nil {
		return
	}

	err := r.out.Send(*u)
	if err != nil {
		logging.Warning("Failed to send transform update: %v", err)
	}
}
