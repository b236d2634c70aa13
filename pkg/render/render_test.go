package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/zoom/pkg/geom"
)

func square(size int) image.Image {
	i := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(i, i.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return i
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}

func TestStyle(t *testing.T) {
	s := NewStyle(geom.Vec(10, 20))
	assert.Equal(t, geom.Vec(10, 20), s.Origin())
	assert.Empty(t, s.Properties())

	s.SetTransformOrigin(geom.Vec(0, 0))
	s.SetTransform(geom.Transform{A: geom.Uniform(2), B: geom.Vec(3, 4)})
	assert.Equal(t, "matrix(2,0,0,2,3,4)", s.Transform())
	assert.Equal(t, "0 0", s.TransformOrigin())
	assert.Equal(t, map[string]string{
		"transform":        "matrix(2,0,0,2,3,4)",
		"transform-origin": "0 0",
	}, s.Properties())
	assert.Equal(t, 1, s.Updates())

	s.SetTransformOrigin(geom.Vec(5, 0.5))
	assert.Equal(t, "5px 0.5px", s.TransformOrigin())

	s.ClearTransform()
	assert.Equal(t, "", s.Transform())

	s.Move(geom.Vec(1, 1))
	assert.Equal(t, geom.Vec(1, 1), s.Origin())
}

type recorder struct {
	mu   sync.Mutex
	sent []interface{}
	// if set, Send waits until it is closed
	gate chan struct{}
}

func (r *recorder) Send(v interface{}) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, v)
	return nil
}

func (r *recorder) last() interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return nil
	}
	return r.sent[len(r.sent)-1]
}

func TestRemote(t *testing.T) {
	var out recorder
	r := NewRemote(&out, geom.Vec(0, 0))

	r.SetTransformOrigin(geom.Vec(0, 0))
	r.SetTransform(geom.Translation(geom.Vec(1, 2)))
	assert.Equal(t, "matrix(1,0,0,1,1,2)", r.Transform())
	r.Close()

	assert.Equal(t, Update{Transform: "matrix(1,0,0,1,1,2)", TransformOrigin: "0 0"}, out.last())

	// updates after Close are dropped
	n := len(out.sent)
	r.ClearTransform()
	r.Close()
	assert.Len(t, out.sent, n)
}

func TestRemoteDoesNotBlock(t *testing.T) {
	out := recorder{gate: make(chan struct{})}
	r := NewRemote(&out, geom.Vec(0, 0))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 50; i++ {
			r.SetTransform(geom.Translation(geom.Vec(float64(i), 0)))
		}
		r.ClearTransform()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("setters blocked on a stalled client")
	}

	close(out.gate)
	r.Close()

	// intermediate states may be skipped, the final one is not
	assert.Equal(t, Update{Transform: "none"}, out.last())
	assert.True(t, len(out.sent) <= 52)
}

func TestPlacement(t *testing.T) {
	tr := geom.Transform{A: geom.Uniform(2)}

	// scaling around the origin (5, 5) keeps it in place
	p := placement(geom.Vec(100, 0), geom.Vec(5, 5), tr)
	assert.Equal(t, geom.Vec(105, 5), p.Map(geom.Vec(5, 5)))
	assert.Equal(t, geom.Vec(95, -5), p.Map(geom.Vec(0, 0)))
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(square(10), 60, 60, geom.Vec(5, 5))
	assert.True(t, isBlack(c.Image().At(10, 10)))
	assert.False(t, isBlack(c.Image().At(30, 30)))

	c.SetTransform(geom.Translation(geom.Vec(20, 20)))
	img := c.Image()
	assert.False(t, isBlack(img.At(10, 10)))
	assert.True(t, isBlack(img.At(30, 30)))
	assert.Equal(t, 1, c.Frames())

	c.ClearTransform()
	assert.True(t, isBlack(c.Image().At(10, 10)))

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	assert.NotZero(t, buf.Len())
}

func TestCanvasOutline(t *testing.T) {
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, 10, 10)), 40, 40, geom.Vec(0, 0))
	c.Outline = color.RGBA{255, 0, 0, 255}
	c.SetTransform(geom.Translation(geom.Vec(10, 10)))

	r, g, _, _ := c.Image().At(10, 15).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.True(t, g < 0xffff)
}

func TestPDFMatrix(t *testing.T) {
	tr := geom.Translation(geom.Vec(10, 20))
	m := pdfMatrix(tr, 100)

	// top-left (0, 0) is at PDF (0, 100); moved down by 20 means PDF y 80
	assert.Equal(t, geom.Vec(10, 80), m.Map(geom.Vec(0, 100)))
	assert.Equal(t, geom.Transform{A: geom.Identity(), B: geom.Vec(10, -20)}, m)
}

func TestPDF(t *testing.T) {
	p := NewPDF(square(20), 200, 200, geom.Vec(10, 10))
	p.Title = "test"
	p.MaxFrames = 2

	p.SetTransformOrigin(geom.Vec(0, 0))
	p.SetTransform(geom.Translation(geom.Vec(1, 0)))
	p.SetTransform(geom.Translation(geom.Vec(2, 0)))
	p.ClearTransform()

	frames := p.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, geom.Translation(geom.Vec(2, 0)), frames[0])
	assert.Equal(t, geom.IdentityTransform(), frames[1])

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.NoError(t, ValidatePDF(bytes.NewReader(buf.Bytes())))
}

func TestPDFWithoutFrames(t *testing.T) {
	p := NewPDF(square(20), 100, 100, geom.Vec(0, 0))
	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	assert.NoError(t, ValidatePDF(bytes.NewReader(buf.Bytes())))
}
