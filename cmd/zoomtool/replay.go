package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akeil/zoom"
	"github.com/akeil/zoom/pkg/clock"
	"github.com/akeil/zoom/pkg/geom"
	"github.com/akeil/zoom/pkg/input"
	"github.com/akeil/zoom/pkg/render"
)

type replayOptions struct {
	recording string
	content   string
	pngOut    string
	pdfOut    string
	validate  bool
	offset    string
	width     int
	height    int
}

func doReplay(s settings, o replayOptions) error {
	recs, err := readRecording(o.recording)
	if err != nil {
		return err
	}
	offset, err := parseVector(o.offset)
	if err != nil {
		return err
	}
	content, err := loadContent(o.content)
	if err != nil {
		return err
	}

	var feed input.Feed
	c := clock.NewFake(0)
	cfg := s.config()

	// every surface gets its own handler on the shared feed and clock
	style := render.NewStyle(offset)
	surfaces := []zoom.Surface{style}
	var canvas *render.Canvas
	if o.pngOut != "" {
		canvas = render.NewCanvas(content, o.width, o.height, offset)
		canvas.Outline = color.RGBA{200, 40, 40, 255}
		surfaces = append(surfaces, canvas)
	}
	var pdf *render.PDF
	if o.pdfOut != "" {
		pdf = render.NewPDF(content, float64(o.width), float64(o.height), offset)
		pdf.Title = o.recording
		surfaces = append(surfaces, pdf)
	}

	handlers := make([]*zoom.Zoom, 0, len(surfaces))
	for _, sf := range surfaces {
		z, err := zoom.New(sf, &feed, cfg, zoom.WithScheduler(c), zoom.WithTimers(c))
		if err != nil {
			return err
		}
		defer z.Destroy()
		handlers = append(handlers, z)
	}

	fmt.Printf("%v replay %d events\n", ellipsis, len(recs))
	input.Replay(recs, c, &feed)
	// let running animations and tap timers run out
	c.Advance(cfg.ResetDuration + cfg.DoubleTapWindow + time.Second)

	z := handlers[0]
	fmt.Printf("%v final transform: %v (zoom %.3f)\n", checkmark, style.Transform(), z.Transform().Magnification())

	var group errgroup.Group
	if canvas != nil {
		group.Go(func() error {
			return writeFile(o.pngOut, canvas.WritePNG)
		})
	}
	if pdf != nil {
		group.Go(func() error {
			return writePDF(pdf, o.pdfOut, o.validate)
		})
	}
	return group.Wait()
}

func readRecording(path string) ([]input.Record, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return input.ReadRecording(r)
}

func writePDF(pdf *render.PDF, path string, validate bool) error {
	var buf bytes.Buffer
	err := pdf.Write(&buf)
	if err != nil {
		fmt.Printf("%v Failed to render PDF: %v\n", crossmark, err)
		return err
	}

	if validate {
		err = render.ValidatePDF(bytes.NewReader(buf.Bytes()))
		if err != nil {
			fmt.Printf("%v PDF is invalid: %v\n", crossmark, err)
			return err
		}
	}

	return writeFile(path, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = write(f)
	if err != nil {
		fmt.Printf("%v Failed to write %q: %v\n", crossmark, path, err)
		return err
	}
	fmt.Printf("%v saved as %q.\n", checkmark, path)
	return f.Close()
}

func loadContent(path string) (image.Image, error) {
	if path == "" {
		return checkerboard(200, 150, 25), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	i, _, err := image.Decode(f)
	return i, err
}

// checkerboard is the default content when no image is given.
func checkerboard(w, h, cell int) image.Image {
	i := image.NewRGBA(image.Rect(0, 0, w, h))
	light := image.NewUniform(color.RGBA{220, 220, 220, 255})
	dark := image.NewUniform(color.RGBA{60, 60, 60, 255})
	for y := 0; y < h; y += cell {
		for x := 0; x < w; x += cell {
			src := light
			if (x/cell+y/cell)%2 == 1 {
				src = dark
			}
			draw.Draw(i, image.Rect(x, y, x+cell, y+cell), src, image.Point{}, draw.Src)
		}
	}
	return i
}

func parseVector(s string) (geom.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geom.Vector{}, fmt.Errorf("invalid position %q, expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Vector{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Vector{}, err
	}
	return geom.Vec(x, y), nil
}
