// Package render provides surfaces that display the transform of a
// zoom handler: CSS style values, bitmaps and PDF documents.
//
// All surfaces share the same model: an element is laid out at Offset
// in page coordinates, and its content is displayed through a transform
// that is applied around the transform origin, in element coordinates.
package render

import (
	"strconv"
	"sync"

	"github.com/akeil/zoom/pkg/geom"
)

// Box is the layout position of an element. It is safe for concurrent use.
type Box struct {
	mu     sync.Mutex
	offset geom.Vector
}

// Origin returns the top-left corner of the element in page coordinates.
func (b *Box) Origin() geom.Vector {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.offset
}

// Move places the element at a new page position.
func (b *Box) Move(offset geom.Vector) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offset = offset
}

// Style holds the CSS transform properties for an element.
type Style struct {
	Box

	mu        sync.Mutex
	transform string
	origin    string
	updates   int
}

// NewStyle creates a style for an element placed at offset.
func NewStyle(offset geom.Vector) *Style {
	s := &Style{}
	s.Move(offset)
	return s
}

// SetTransform sets the "transform" property.
func (s *Style) SetTransform(t geom.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transform = t.CSS()
	s.updates++
}

// SetTransformOrigin sets the "transform-origin" property.
func (s *Style) SetTransformOrigin(o geom.Vector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origin = px(o.X) + " " + px(o.Y)
}

// ClearTransform removes the "transform" property.
func (s *Style) ClearTransform() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transform = ""
}

// Transform is the current value of the "transform" property.
func (s *Style) Transform() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transform
}

// TransformOrigin is the current value of the "transform-origin" property.
func (s *Style) TransformOrigin() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}

// Updates counts the calls to SetTransform.
func (s *Style) Updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

// Properties lists the non-empty style properties.
func (s *Style) Properties() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := make(map[string]string)
	if s.transform != "" {
		p["transform"] = s.transform
	}
	if s.origin != "" {
		p["transform-origin"] = s.origin
	}
	return p
}

func px(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64) + "px"
}
