package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/zoom/pkg/geom"
)

const pinch = `# pinch, then pan
{"t": 0, "type": "start", "touches": [[10, 10], [110, 10]]}
{"t": 16, "type": "move", "touches": [[10, 10], [160, 10]]}
{"t": 32, "type": "end", "touches": []}
{"t": 500, "type": "start", "touches": [[50, 50]]}
{"t": 516, "type": "move", "touches": [[60, 50]]}
{"t": 532, "type": "end", "touches": []}
`

func TestParseVector(t *testing.T) {
	v, err := parseVector("10, 2.5")
	require.NoError(t, err)
	assert.Equal(t, geom.Vec(10, 2.5), v)

	_, err = parseVector("10")
	assert.Error(t, err)
	_, err = parseVector("a,b")
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	dir, err := ioutil.TempDir("", "zoomtool")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	rec := filepath.Join(dir, "pinch.jsonl")
	require.NoError(t, ioutil.WriteFile(rec, []byte(pinch), 0644))

	s := settings{
		rotation:  true,
		tapWindow: 300 * time.Millisecond,
		duration:  100 * time.Millisecond,
	}
	o := replayOptions{
		recording: rec,
		pngOut:    filepath.Join(dir, "out.png"),
		pdfOut:    filepath.Join(dir, "out.pdf"),
		validate:  true,
		offset:    "20,20",
		width:     400,
		height:    300,
	}
	require.NoError(t, doReplay(s, o))

	for _, p := range []string{o.pngOut, o.pdfOut} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestReplayMissingRecording(t *testing.T) {
	err := doReplay(settings{}, replayOptions{recording: "does-not-exist.jsonl", offset: "0,0"})
	assert.Error(t, err)
}
