package geom

import (
	"strconv"
	"strings"
)

// Transform is the affine map x -> A*x + B.
//
// Transforms are values; all operations return new transforms.
type Transform struct {
	A Matrix
	B Vector
}

// IdentityTransform maps every point onto itself.
func IdentityTransform() Transform {
	return Transform{A: Identity()}
}

// Translation moves every point by d.
func Translation(d Vector) Transform {
	return Transform{A: Identity(), B: d}
}

// Map applies t to the point x.
func (t Transform) Map(x Vector) Vector {
	return Add(Apply(t.A, x), t.B)
}

// Magnification is the uniform scale factor of t.
func (t Transform) Magnification() float64 {
	return Magnification(t.A)
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == IdentityTransform()
}

// Compose returns the transform T o U, i.e. U is applied first.
//
//  T(U(x)) = T.A(U.A(x) + U.B) + T.B
//          = T.A(U.A(x)) + T.A(U.B) + T.B
//
func Compose(t, u Transform) Transform {
	return Transform{
		A: Multiply(t.A, u.A),
		B: Add(Apply(t.A, u.B), t.B),
	}
}

// Interpolate is the entry-wise weighted average (1-p)z + (p)i of two
// transforms, with progress p from 0 to 1.
//
// This is not a geodesic interpolation; intermediate matrices are not
// similarities in general.
func Interpolate(z, i Transform, p float64) Transform {
	switch {
	case p <= 0:
		return z
	case p >= 1:
		return i
	}
	return Transform{
		A: LerpMatrix(z.A, i.A, p),
		B: Lerp(z.B, i.B, p),
	}
}

// Components lists the six entries in rendering order:
// A[0].X, A[0].Y, A[1].X, A[1].Y, B.X, B.Y.
//
// This is the order of the CSS matrix() function and of PDF/draw2d
// transformation matrices.
func (t Transform) Components() [6]float64 {
	return [6]float64{t.A[0].X, t.A[0].Y, t.A[1].X, t.A[1].Y, t.B.X, t.B.Y}
}

// FromComponents is the inverse of Components.
func FromComponents(c [6]float64) Transform {
	return Transform{
		A: Matrix{{c[0], c[1]}, {c[2], c[3]}},
		B: Vector{c[4], c[5]},
	}
}

// CSS formats t as a CSS transform value, "matrix(a,b,c,d,e,f)".
func (t Transform) CSS() string {
	c := t.Components()
	parts := make([]string, len(c))
	for i, v := range c {
		if v == 0 {
			v = 0 // no "-0"
		}
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "matrix(" + strings.Join(parts, ",") + ")"
}

func (t Transform) String() string {
	return t.CSS()
}
