package angif

import (
	"testing"

	"github.com/pixeldeck/angif/internal/lzw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGIF assembles a single-frame GIF89a byte stream by hand, using
// the package's own LZW encoder and sub-block chunker — the same
// pieces the parser below is being tested against, but exercised here
// at the byte level instead of through Serialize, so parse_test.go
// stays independent of serialize.go's own choices about field packing.
func buildGIF(t *testing.T, width, height int, globalColors []Color, pixels []byte, extras []byte) []byte {
	t.Helper()
	minCodeSize := bitsForCount(len(globalColors))
	if minCodeSize < 2 {
		minCodeSize = 2
	}

	var out []byte
	out = append(out, []byte("GIF89a")...)
	out = append(out, byte(width&0xFF), byte(width>>8))
	out = append(out, byte(height&0xFF), byte(height>>8))
	packed := byte(0x80) | byte(bitsForCount(len(globalColors))-1)
	out = append(out, packed, 0, 0)
	for _, c := range globalColors {
		out = append(out, c.R, c.G, c.B)
	}

	out = append(out, extras...)

	out = append(out, imageIntro)
	out = append(out, 0, 0, 0, 0) // left, top
	out = append(out, byte(width&0xFF), byte(width>>8))
	out = append(out, byte(height&0xFF), byte(height>>8))
	out = append(out, 0) // packed: no local map, not interlaced

	out = append(out, byte(minCodeSize))
	enc := lzw.NewEncoder()
	out = append(out, chunk(enc.Encode(pixels, minCodeSize))...)

	out = append(out, trailerByte)
	return out
}

func TestParseScenario1_2x2GlobalMap(t *testing.T) {
	data := buildGIF(t, 2, 2, []Color{{0, 0, 0}, {255, 255, 255}}, []byte{0, 1, 1, 0}, nil)

	f, err := OpenReadBytes(data)
	require.NoError(t, err)
	require.NoError(t, f.Slurp())

	require.Len(t, f.Frames, 1)
	assert.Equal(t, []byte{0, 1, 1, 0}, f.Frames[0].Raster)
	require.NotNil(t, f.GlobalColorMap)
	assert.Equal(t, Color{0, 0, 0}, f.GlobalColorMap.Colors[0])
	assert.Equal(t, Color{255, 255, 255}, f.GlobalColorMap.Colors[1])
}

func TestParseScenario3_GraphicControlExtension(t *testing.T) {
	gce := []byte{extIntro, 0xF9, 4, 0x00, 0x0A, 0x00, 0x00, 0x00}
	data := buildGIF(t, 1, 1, []Color{{0, 0, 0}, {1, 1, 1}}, []byte{0}, gce)

	f, err := OpenReadBytes(data)
	require.NoError(t, err)
	require.NoError(t, f.Slurp())

	require.Len(t, f.Frames, 1)
	require.Len(t, f.Frames[0].Extensions, 1)
	assert.Equal(t, byte(0xF9), f.Frames[0].Extensions[0].Function)
	assert.Len(t, f.Frames[0].Extensions[0].Bytes, 4)
}

func TestParseScenario4_NetscapeLoopExtension(t *testing.T) {
	app := []byte{extIntro, 0xFF, 11}
	app = append(app, []byte("NETSCAPE2.0")...)
	app = append(app, 3, 1, 0, 0) // continuation sub-block: id 1, loop count 0
	app = append(app, 0)          // terminator

	data := buildGIF(t, 1, 1, []Color{{0, 0, 0}, {1, 1, 1}}, []byte{0}, app)

	f, err := OpenReadBytes(data)
	require.NoError(t, err)
	require.NoError(t, f.Slurp())

	require.Len(t, f.Frames, 1)
	require.Len(t, f.Frames[0].Extensions, 2)
	assert.Equal(t, byte(0xFF), f.Frames[0].Extensions[0].Function)
	assert.Equal(t, byte(0), f.Frames[0].Extensions[1].Function)

	n, ok := f.LoopCount()
	assert.True(t, ok)
	assert.Equal(t, 0, n)
}

func TestParseScenario6_InterlacedRowOrder(t *testing.T) {
	// 1x8: natural rows are 0..7, each a single distinct pixel value so
	// the decoded order is unambiguous.
	natural := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	stored := interlaceRows(natural, 1, 8)

	minCodeSize := 4
	enc := lzw.NewEncoder()
	lzwData := enc.Encode(stored, minCodeSize)

	var out []byte
	out = append(out, []byte("GIF89a")...)
	out = append(out, 1, 0, 8, 0)
	colors := make([]Color, 16)
	packed := byte(0x80) | byte(bitsForCount(len(colors))-1)
	out = append(out, packed, 0, 0)
	for _, c := range colors {
		out = append(out, c.R, c.G, c.B)
	}
	out = append(out, imageIntro, 0, 0, 0, 0, 1, 0, 8, 0, 0x40) // interlace bit set
	out = append(out, byte(minCodeSize))
	out = append(out, chunk(lzwData)...)
	out = append(out, trailerByte)

	f, err := OpenReadBytes(out)
	require.NoError(t, err)
	require.NoError(t, f.Slurp())

	require.Len(t, f.Frames, 1)
	assert.Equal(t, natural, f.Frames[0].Raster, "decoded rows must be in natural top-to-bottom order")
}

func TestParseRejectsBadSignature(t *testing.T) {
	_, err := OpenReadBytes([]byte("not a gif file at all............"))
	require.Error(t, err)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ErrNotGIFFile, ae.Code)
}

func TestParseRejectsTruncatedHeader(t *testing.T) {
	_, err := OpenReadBytes([]byte("GIF89a"))
	require.Error(t, err)
}

// TestParseStopsCleanlyOnUnknownRecordType matches gif_lib.c's
// GIFPreprocess default case: a record byte that is neither an
// extension introducer, an image descriptor, nor the trailer ends
// parsing without error, keeping whatever frames were already decoded.
func TestParseStopsCleanlyOnUnknownRecordType(t *testing.T) {
	data := buildGIF(t, 1, 1, []Color{{0, 0, 0}, {1, 1, 1}}, []byte{0}, nil)
	// Drop the trailer byte and append a record type this parser does
	// not recognize, so parsing must stop cleanly instead of erroring.
	data = append(data[:len(data)-1], 0x99)

	f, err := OpenReadBytes(data)
	require.NoError(t, err)
	require.NoError(t, f.Slurp())
	require.Len(t, f.Frames, 1, "the frame parsed before the unknown record must be kept")
}
