package angif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphicsControlRoundTrip(t *testing.T) {
	f := &Frame{}
	_, ok := f.GraphicsControl()
	assert.False(t, ok)

	want := GraphicsControlBlock{
		DisposalMode:     DisposalBackground,
		UserInputFlag:    true,
		DelayTime:        250,
		TransparentColor: 7,
	}
	f.SetGraphicsControl(want)

	got, ok := f.GraphicsControl()
	require.True(t, ok)
	assert.Equal(t, want, got)

	// Setting it again replaces in place rather than appending.
	f.SetGraphicsControl(GraphicsControlBlock{TransparentColor: NoTransparentColor})
	assert.Len(t, f.Extensions, 1)
}

func TestGraphicsControlNoTransparentColor(t *testing.T) {
	f := &Frame{}
	f.SetGraphicsControl(GraphicsControlBlock{DisposalMode: DisposalDoNot, TransparentColor: NoTransparentColor})

	got, ok := f.GraphicsControl()
	require.True(t, ok)
	assert.Equal(t, NoTransparentColor, got.TransparentColor)
	assert.Equal(t, DisposalDoNot, got.DisposalMode)
}

func TestLoopCountRoundTrip(t *testing.T) {
	f := &File{}
	_, ok := f.LoopCount()
	assert.False(t, ok)

	_, err := f.AppendFrame(&Frame{Raster: []byte{0}})
	require.NoError(t, err)

	f.SetLoopCount(0)
	n, ok := f.LoopCount()
	require.True(t, ok)
	assert.Equal(t, 0, n)

	// Replacing the loop count must not duplicate the NETSCAPE2.0 block.
	f.SetLoopCount(5)
	n, ok = f.LoopCount()
	require.True(t, ok)
	assert.Equal(t, 5, n)

	count := 0
	for _, e := range f.Frames[0].Extensions {
		if e.Function == 0xFF && string(e.Bytes) == "NETSCAPE2.0" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
