package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/akeil/zoom/internal/imaging"
	"github.com/akeil/zoom/pkg/geom"
)

var bgColor = color.White

// Canvas paints an element's content onto a page-sized bitmap, through
// the current transform. Every change repaints the complete page.
type Canvas struct {
	Box
	// Background fills the page before painting.
	Background color.Color
	// Outline, if set, strokes the transformed element bounds.
	Outline color.Color

	mu        sync.Mutex
	content   image.Image
	page      *image.RGBA
	transform geom.Transform
	origin    geom.Vector
	cleared   bool
	frames    int
}

// NewCanvas creates a canvas with a page of the given size,
// displaying content as the element placed at offset.
func NewCanvas(content image.Image, width, height int, offset geom.Vector) *Canvas {
	c := &Canvas{
		Background: bgColor,
		content:    content,
		page:       image.NewRGBA(image.Rect(0, 0, width, height)),
		transform:  geom.IdentityTransform(),
	}
	c.Move(offset)
	c.paint()
	return c
}

func (c *Canvas) SetTransform(t geom.Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform = t
	c.cleared = false
	c.frames++
	c.paint()
}

func (c *Canvas) SetTransformOrigin(o geom.Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = o
	c.paint()
}

func (c *Canvas) ClearTransform() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform = geom.IdentityTransform()
	c.cleared = true
	c.paint()
}

// Frames counts the calls to SetTransform.
func (c *Canvas) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Image returns a copy of the current page.
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return imaging.ToRGBA(c.page)
}

// WritePNG encodes the current page as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// paint must be called with the lock held.
func (c *Canvas) paint() {
	imaging.Fill(c.page, c.Background)
	t := placement(c.Origin(), c.origin, c.transform)
	imaging.Transform(c.page, c.content, t)
	if c.Outline != nil {
		imaging.Outline(c.page, c.content.Bounds(), t, c.Outline, 1)
	}
}

// placement maps element coordinates to page coordinates for an element
// at offset, displayed through t around origin.
func placement(offset, origin geom.Vector, t geom.Transform) geom.Transform {
	around := geom.Compose(geom.Translation(origin), geom.Compose(t, geom.Translation(geom.Scale(-1, origin))))
	return geom.Compose(geom.Translation(offset), around)
}
