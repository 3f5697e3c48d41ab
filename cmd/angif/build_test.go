package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixeldeck/angif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBuildThenInspect(t *testing.T) {
	dir := t.TempDir()

	pixels := make([]byte, 4*4*3)
	for i := 0; i < 4*4; i++ {
		pixels[i*3] = byte(i * 10)
		pixels[i*3+1] = byte(255 - i*10)
		pixels[i*3+2] = 128
	}

	manifest := `{
		"width": 4, "height": 4, "loop": 0,
		"frames": [
			{"delay": 20, "disposal": 2, "samplefac": 10, "dither": "FloydSteinberg", "serpentine": true, "pixelsHex": "` + hex.EncodeToString(pixels) + `"}
		]
	}`
	manifestPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	outPath := filepath.Join(dir, "out.gif")
	require.NoError(t, runBuild(manifestPath, outPath))

	f, err := angif.OpenRead(outPath)
	require.NoError(t, err)
	require.NoError(t, f.Slurp())

	require.Len(t, f.Frames, 1)
	assert.Equal(t, 4, f.Width)
	assert.Equal(t, 4, f.Height)
	assert.Len(t, f.Frames[0].Raster, 16)

	gcb, ok := f.Frames[0].GraphicsControl()
	require.True(t, ok)
	assert.Equal(t, 20, gcb.DelayTime)
	assert.Equal(t, angif.DisposalBackground, gcb.DisposalMode)

	n, ok := f.LoopCount()
	require.True(t, ok)
	assert.Equal(t, 0, n)

	cmd := newInspectCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, runInspect(cmd, outPath))
	assert.Contains(t, out.String(), "1 frame(s)")
}

func TestRunBuildRejectsMismatchedPixelLength(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"width": 2, "height": 2, "frames": [{"pixelsHex": "0011"}]}`
	manifestPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	err := runBuild(manifestPath, filepath.Join(dir, "out.gif"))
	assert.Error(t, err)
}
