package geom

import (
	"math"
)

// Matrix is a 2x2 matrix stored as two column vectors.
//
//  A[0].X   A[1].X
//  A[0].Y   A[1].Y
//
type Matrix [2]Vector

// Identity is the 2x2 identity matrix.
func Identity() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// Rotation builds the rotate-and-scale matrix from the projections
// c = r*cos(angle) and s = r*sin(angle).
//
//  c  -s
//  s   c
//
func Rotation(c, s float64) Matrix {
	return Matrix{{c, s}, {-s, c}}
}

// Uniform is a scale-only matrix with factor f on the diagonal.
func Uniform(f float64) Matrix {
	return Matrix{{f, 0}, {0, f}}
}

// Apply multiplies matrix m with x, treating the columns of m as
// basis vectors and x as coefficients.
func Apply(m Matrix, x Vector) Vector {
	return Add(Scale(x.X, m[0]), Scale(x.Y, m[1]))
}

// Multiply combines two matrices; the columns of b are mapped through a.
func Multiply(a, b Matrix) Matrix {
	return Matrix{Apply(a, b[0]), Apply(a, b[1])}
}

// ScaleMatrix multiplies every entry of m with l.
func ScaleMatrix(l float64, m Matrix) Matrix {
	return Matrix{Scale(l, m[0]), Scale(l, m[1])}
}

// LerpMatrix is the entry-wise weighted average (1-p)a + (p)b.
func LerpMatrix(a, b Matrix, p float64) Matrix {
	return Matrix{Lerp(a[0], b[0], p), Lerp(a[1], b[1], p)}
}

// Det is the determinant of m.
func Det(m Matrix) float64 {
	return Wedge(m[0], m[1])
}

// Magnification is the uniform scale factor of a rotate-and-scale matrix.
//
// For such a matrix both columns have the same length, so this is the
// length of the first column. Without a rotation component it equals
// half the trace, (m[0].X+m[1].Y)/2; with rotation half the trace is
// s*cos(theta), which is negative past a quarter turn and unusable as a
// clamp measure.
func Magnification(m Matrix) float64 {
	return math.Hypot(m[0].X, m[0].Y)
}
