package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/akeil/zoom/internal/imaging"
	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/geom"
)

// largest side of the embedded content image, in pixels
const maxImageSize = 2048

// PDF records every transform it receives and writes them as a PDF
// document with one page per frame.
//
// Page units are points; element coordinates are used as points.
type PDF struct {
	Box
	Title string
	// MaxFrames limits the number of recorded frames; older frames are
	// dropped. Zero means no limit.
	MaxFrames int

	mu      sync.Mutex
	content image.Image
	width   float64
	height  float64
	origin  geom.Vector
	frames  []geom.Transform
}

// NewPDF creates a recorder with pages of the given size in points,
// displaying content as the element placed at offset.
func NewPDF(content image.Image, width, height float64, offset geom.Vector) *PDF {
	p := &PDF{
		content: content,
		width:   width,
		height:  height,
	}
	p.Move(offset)
	return p
}

func (p *PDF) SetTransform(t geom.Transform) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, t)
	if p.MaxFrames > 0 && len(p.frames) > p.MaxFrames {
		p.frames = p.frames[len(p.frames)-p.MaxFrames:]
	}
}

func (p *PDF) SetTransformOrigin(o geom.Vector) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.origin = o
}

// ClearTransform records an identity frame.
func (p *PDF) ClearTransform() {
	p.SetTransform(geom.IdentityTransform())
}

// Frames returns the recorded transforms.
func (p *PDF) Frames() []geom.Transform {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]geom.Transform(nil), p.frames...)
}

// Write renders all recorded frames. Without frames, a single page with
// the untransformed content is written.
func (p *PDF) Write(w io.Writer) error {
	p.mu.Lock()
	frames := append([]geom.Transform(nil), p.frames...)
	origin := p.origin
	p.mu.Unlock()
	if len(frames) == 0 {
		frames = []geom.Transform{geom.IdentityTransform()}
	}

	logging.Debug("Render PDF with %d frames", len(frames))
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: p.width, Ht: p.height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("helvetica", "", 8)
	pdf.SetTextColor(127, 127, 127)
	pdf.SetProducer("zoom", true)
	if p.Title != "" {
		pdf.SetTitle(p.Title, true)
	}
	pdf.SetCreationDate(time.Now().UTC())

	name := uuid.New().String()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	var buf bytes.Buffer
	err := png.Encode(&buf, imaging.Fit(p.content, maxImageSize))
	if err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader(name, opts, &buf)

	b := p.content.Bounds()
	for i, t := range frames {
		pdf.AddPage()
		m := pdfMatrix(placement(p.Origin(), origin, t), p.height).Components()

		pdf.TransformBegin()
		pdf.Transform(gofpdf.TransformMatrix{A: m[0], B: m[1], C: m[2], D: m[3], E: m[4], F: m[5]})
		pdf.ImageOptions(name, 0, 0, float64(b.Dx()), float64(b.Dy()), false, opts, 0, "")
		pdf.TransformEnd()

		pdf.Text(8, p.height-8, frameLabel(i, len(frames), t))
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func frameLabel(i, n int, t geom.Transform) string {
	return fmt.Sprintf("frame %d / %d  %v", i+1, n, t.CSS())
}

// pdfMatrix converts a transform in top-down page coordinates to the
// bottom-up coordinates of a PDF page with the given height.
func pdfMatrix(t geom.Transform, height float64) geom.Transform {
	flip := geom.Transform{
		A: geom.Matrix{{X: 1, Y: 0}, {X: 0, Y: -1}},
		B: geom.Vec(0, height),
	}
	return geom.Compose(flip, geom.Compose(t, flip))
}

// ValidatePDF checks the PDF document read from rs.
func ValidatePDF(rs io.ReadSeeker) error {
	conf := pdfcpu.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpu.ValidationRelaxed
	return api.Validate(rs, conf)
}
