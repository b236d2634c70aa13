package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/akeil/zoom/pkg/geom"
)

// Aff3 converts a transform to the row-major matrix used by x/image/draw.
//
//  A[0].X  A[1].X  B.X
//  A[0].Y  A[1].Y  B.Y
//
func Aff3(t geom.Transform) f64.Aff3 {
	return f64.Aff3{
		t.A[0].X, t.A[1].X, t.B.X,
		t.A[0].Y, t.A[1].Y, t.B.Y,
	}
}

// Transform paints src onto dst, mapping source coordinates through t.
func Transform(dst draw.Image, src image.Image, t geom.Transform) {
	// bilinear keeps edges smooth while zooming in and out
	draw.BiLinear.Transform(dst, Aff3(t), src, src.Bounds(), draw.Over, nil)
}

// Fill paints the complete destination image with the given color.
func Fill(dst draw.Image, c color.Color) {
	bg := image.NewUniform(c)
	draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)
}

// Outline strokes the rectangle r, mapped through t, onto dst.
func Outline(dst draw.Image, r image.Rectangle, t geom.Transform, c color.Color, width float64) {
	gc := draw2dimg.NewGraphicContext(dst)
	gc.SetMatrixTransform(draw2d.Matrix(t.Components()))
	gc.SetStrokeColor(c)
	// the line width is scaled along with the rectangle
	if m := t.Magnification(); m > 0 {
		width = width / m
	}
	gc.SetLineWidth(width)
	draw2dkit.Rectangle(gc, float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
	gc.Stroke()
}

// Fit creates a copy of the given image that fits into a square of the
// given size, keeping the aspect ratio. Smaller images are returned as is.
func Fit(i image.Image, size int) image.Image {
	b := i.Bounds()
	longest := b.Dx()
	if b.Dy() > longest {
		longest = b.Dy()
	}
	if longest <= size || longest == 0 {
		return i
	}

	f := float64(size) / float64(longest)
	w := int(math.Round(float64(b.Dx()) * f))
	h := int(math.Round(float64(b.Dy()) * f))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), i, b, draw.Over, nil)
	return dst
}

// ToRGBA creates an RGBA copy of the given image.
func ToRGBA(i image.Image) *image.RGBA {
	b := i.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, i, b.Min, draw.Src)
	return dst
}
