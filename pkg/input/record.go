package input

import (
	"bufio"
	"encoding/json"
	"io"
	"math"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"github.com/akeil/zoom/pkg/geom"
	"github.com/akeil/zoom/pkg/gesture"
)

// Record is a snapshot with the time at which it was received,
// relative to the start of the recording.
type Record struct {
	At time.Duration
	Snapshot
}

// line format, one JSON object per line:
//
//  {"t": 120.5, "type": "move", "touches": [[10, 20], [110, 20]]}
//
// t is in milliseconds.
type recordJSON struct {
	T       float64      `json:"t"`
	Type    string       `json:"type"`
	Touches [][2]float64 `json:"touches"`
}

// ReadRecording reads a gesture recording in JSON lines format.
//
// Blank lines and lines starting with '#' are skipped. Records must be
// in chronological order.
func ReadRecording(r io.Reader) ([]Record, error) {
	var recs []Record
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rj recordJSON
		err := json.Unmarshal([]byte(line), &rj)
		if err != nil {
			return nil, xerrors.Errorf("line %d: %w", n, err)
		}
		phase, ok := gesture.ParsePhase(rj.Type)
		if !ok {
			return nil, xerrors.Errorf("line %d: unknown event type %q", n, rj.Type)
		}
		at := time.Duration(math.Round(rj.T * float64(time.Millisecond)))
		if len(recs) > 0 && at < recs[len(recs)-1].At {
			return nil, xerrors.Errorf("line %d: time %v is before previous record", n, at)
		}

		pts := make([]geom.Vector, len(rj.Touches))
		for i, p := range rj.Touches {
			pts[i] = geom.Vec(p[0], p[1])
		}
		recs = append(recs, Record{At: at, Snapshot: Snapshot{Phase: phase, Points: pts}})
	}
	if err := s.Err(); err != nil {
		return nil, xerrors.Errorf("read recording: %w", err)
	}
	return recs, nil
}

// WriteRecording writes records in the format read by ReadRecording.
func WriteRecording(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range recs {
		rj := recordJSON{
			T:       float64(r.At) / float64(time.Millisecond),
			Type:    r.Phase.String(),
			Touches: make([][2]float64, len(r.Points)),
		}
		for i, p := range r.Points {
			rj.Touches[i] = [2]float64{p.X, p.Y}
		}
		err := enc.Encode(rj)
		if err != nil {
			return err
		}
	}
	return nil
}

// Advancer is a clock that can be moved forward manually.
type Advancer interface {
	Now() time.Duration
	Advance(d time.Duration)
}

// Replay publishes the records to feed, advancing the clock to the time
// of each record first so that timers and frames fire in between.
func Replay(recs []Record, c Advancer, feed *Feed) {
	start := c.Now()
	for _, r := range recs {
		if d := start + r.At - c.Now(); d > 0 {
			c.Advance(d)
		}
		feed.Publish(r.Snapshot)
	}
}
