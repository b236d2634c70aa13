package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/akeil/zoom"
)

const (
	checkmark = "\u2713"
	crossmark = "\u2717"
	ellipsis  = "\u2026"
)

type settings struct {
	rotation  bool
	minZoom   float64
	maxZoom   float64
	tapWindow time.Duration
	duration  time.Duration
}

func (s settings) config() zoom.Config {
	cfg := zoom.DefaultConfig()
	cfg.AllowRotation = s.rotation
	cfg.MinZoom = s.minZoom
	cfg.MaxZoom = s.maxZoom
	cfg.DoubleTapWindow = s.tapWindow
	cfg.ResetDuration = s.duration
	return cfg
}

func main() {
	app := kingpin.New("zoomtool", "Pinch-zoom gesture tool")
	app.HelpFlag.Short('h')

	var s settings
	app.Flag("rotation", "Allow two-finger rotation").Default("true").Envar("ZOOM_ROTATION").BoolVar(&s.rotation)
	app.Flag("min-zoom", "Smallest magnification").Default("0").Envar("ZOOM_MIN").Float64Var(&s.minZoom)
	app.Flag("max-zoom", "Largest magnification, 0 for no limit").Default("0").Envar("ZOOM_MAX").Float64Var(&s.maxZoom)
	app.Flag("tap-window", "Double-tap window").Default("300ms").Envar("ZOOM_TAP_WINDOW").DurationVar(&s.tapWindow)
	app.Flag("reset-duration", "Length of the reset animation").Default("100ms").Envar("ZOOM_RESET_DURATION").DurationVar(&s.duration)
	logLevel := app.Flag("log-level", "Log level").Short('l').Default("warning").Envar("ZOOM_LOG_LEVEL").Enum("debug", "info", "warning", "error", "none")

	replay := app.Command("replay", "Replay a touch recording").Default()
	var (
		recording = replay.Arg("recording", "Recording file (JSON lines), - for stdin").Default("-").String()
		content   = replay.Flag("image", "Content image (PNG or JPEG)").Short('i').String()
		pngOut    = replay.Flag("png", "Write the final frame as PNG").String()
		pdfOut    = replay.Flag("pdf", "Write all frames as PDF").String()
		validate  = replay.Flag("validate", "Validate the written PDF").Bool()
		offset    = replay.Flag("offset", "Element position on the page, as x,y").Default("0,0").String()
		width     = replay.Flag("width", "Page width").Default("800").Int()
		height    = replay.Flag("height", "Page height").Default("600").Int()
	)

	serve := app.Command("serve", "Accept touch events over websocket")
	var (
		addr = serve.Flag("addr", "Listen address").Short('a').Default("localhost:8080").Envar("ZOOM_ADDR").String()
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	zoom.SetLogLevel(*logLevel)

	var err error
	switch command {
	case "replay":
		err = doReplay(s, replayOptions{
			recording: *recording,
			content:   *content,
			pngOut:    *pngOut,
			pdfOut:    *pdfOut,
			validate:  *validate,
			offset:    *offset,
			width:     *width,
			height:    *height,
		})
	case "serve":
		err = doServe(s, *addr)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
