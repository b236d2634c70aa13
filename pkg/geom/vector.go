// Package geom holds the 2D algebra behind the zoom gestures:
// vectors, 2x2 matrices, affine transforms and the similarity solver.
package geom

import (
	"fmt"
	"math"
)

// Vector is a point or displacement in the plane.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec is a shorthand for Vector{x, y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}

// Scale multiplies the scalar l with vector v.
func Scale(l float64, v Vector) Vector {
	return Vector{l * v.X, l * v.Y}
}

// Add returns the sum a + b.
func Add(a, b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y}
}

// Sub returns the difference a - b.
func Sub(a, b Vector) Vector {
	return Vector{a.X - b.X, a.Y - b.Y}
}

// Dot is the scalar inner product of a and b.
func Dot(a, b Vector) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Wedge is the exterior product of a and b,
// the signed area of the parallelogram spanned by both vectors.
func Wedge(a, b Vector) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Length is the euclidean norm of v.
func Length(v Vector) float64 {
	return math.Sqrt(Dot(v, v))
}

// Pair is a pair of points, as captured from one or two touch contacts.
type Pair [2]Vector

// Lerp returns the weighted average (1-p)u + (p)v.
func Lerp(u, v Vector, p float64) Vector {
	return Add(Scale(1-p, u), Scale(p, v))
}
