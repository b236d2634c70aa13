package geom

import (
	"math"
)

// Bounds limits the magnification of a solved transform.
// A zero Max means "no upper bound".
type Bounds struct {
	Min float64
	Max float64
}

// Unbounded does not clamp at all.
var Unbounded = Bounds{Min: 0, Max: math.Inf(1)}

func (b Bounds) max() float64 {
	if b.Max == 0 {
		return math.Inf(1)
	}
	return b.Max
}

// Rebase expresses absolute bounds relative to a current magnification,
// so that clamping an incremental transform keeps the combined
// magnification within the configured range.
//
// A non-positive current magnification cannot be rebased and yields
// Unbounded.
func (b Bounds) Rebase(current float64) Bounds {
	if !(current > 0) || math.IsInf(current, 0) {
		return Unbounded
	}
	return Bounds{Min: b.Min / current, Max: b.max() / current}
}

// RotScale returns the rotate-and-scale matrix that maps vector a onto b.
//
// Treating a and b as complex numbers this is the matrix form of b/a.
// A zero-length a yields the identity.
func RotScale(a, b Vector) Matrix {
	alen := Dot(a, a)
	if alen == 0 {
		return Identity()
	}
	sig := Dot(a, b)
	del := Wedge(a, b)
	return Rotation(sig/alen, del/alen)
}

// ScaleOnly returns the uniform scale matrix that stretches a to the
// length of b, ignoring the angle between them.
// A zero-length a yields the identity.
func ScaleOnly(a, b Vector) Matrix {
	la := Length(a)
	if la == 0 {
		return Identity()
	}
	return Uniform(Length(b) / la)
}

// Clamp rescales m so that its magnification lies within bounds.
// The lower bound is checked first; at most one bound is applied.
func Clamp(m Matrix, bounds Bounds) Matrix {
	mag := Magnification(m)
	lo, hi := bounds.Min, bounds.max()
	switch {
	case mag < lo:
		if mag == 0 {
			// collapsed matrix has no direction to keep
			return Uniform(lo)
		}
		return ScaleMatrix(lo/mag, m)
	case mag > hi:
		return ScaleMatrix(hi/mag, m)
	}
	return m
}

// Solve computes the similarity transform that takes the source pair
// src onto the destination pair dst.
//
// The first point is pinned: src[0] always maps exactly onto dst[0].
// Without rotation, only the distance between the points is matched.
// The magnification is clamped to bounds before the translation is
// derived. A degenerate source pair (both points equal) results in a
// pure translation.
func Solve(src, dst Pair, allowRotation bool, bounds Bounds) Transform {
	a := Sub(src[1], src[0])
	b := Sub(dst[1], dst[0])

	var rs Matrix
	if allowRotation {
		rs = RotScale(a, b)
	} else {
		rs = ScaleOnly(a, b)
	}
	if Dot(a, a) != 0 {
		rs = Clamp(rs, bounds)
	}

	// d[0] = rs*s[0] + t
	t := Sub(dst[0], Apply(rs, src[0]))
	return Transform{A: rs, B: t}
}
