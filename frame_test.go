package angif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFrameDeepCopies(t *testing.T) {
	f := &File{}
	cm, err := NewColorMap(2, []Color{{1, 1, 1}, {2, 2, 2}})
	require.NoError(t, err)

	src := &Frame{
		Desc:       ImageDescriptor{Width: 2, Height: 1, ColorMap: cm},
		Raster:     []byte{0, 1},
		Extensions: []ExtensionBlock{{Function: 0xF9, Bytes: []byte{0, 0, 0, 0}}},
	}

	appended, err := f.AppendFrame(src)
	require.NoError(t, err)
	require.Len(t, f.Frames, 1)

	// Mutating the source afterward must not affect the stored frame.
	src.Raster[0] = 99
	src.Desc.ColorMap.Colors[0] = Color{9, 9, 9}
	src.Extensions[0].Bytes[0] = 0xFF

	assert.Equal(t, byte(0), appended.Raster[0])
	assert.Equal(t, Color{1, 1, 1}, appended.Desc.ColorMap.Colors[0])
	assert.Equal(t, byte(0), appended.Extensions[0].Bytes[0])
}

func TestDropLastFrame(t *testing.T) {
	f := &File{}
	_, err := f.AppendFrame(&Frame{Raster: []byte{1}})
	require.NoError(t, err)
	_, err = f.AppendFrame(&Frame{Raster: []byte{2}})
	require.NoError(t, err)

	f.DropLastFrame()
	require.Len(t, f.Frames, 1)
	assert.Equal(t, []byte{1}, f.Frames[0].Raster)

	f.DropLastFrame()
	f.DropLastFrame() // no-op on empty
	assert.Len(t, f.Frames, 0)
}

func TestEffectiveColorMap(t *testing.T) {
	global, err := NewColorMap(2, nil)
	require.NoError(t, err)
	local, err := NewColorMap(4, nil)
	require.NoError(t, err)

	file := &File{GlobalColorMap: global}
	withLocal := &Frame{Desc: ImageDescriptor{ColorMap: local}}
	withoutLocal := &Frame{}
	noMapAtAll := &Frame{}

	cm, ok := withLocal.EffectiveColorMap(file)
	assert.True(t, ok)
	assert.Same(t, local, cm)

	cm, ok = withoutLocal.EffectiveColorMap(file)
	assert.True(t, ok)
	assert.Same(t, global, cm)

	cm, ok = noMapAtAll.EffectiveColorMap(&File{})
	assert.False(t, ok)
	assert.Nil(t, cm)
}

func TestPixelAspectRatio(t *testing.T) {
	f := &File{}
	assert.Equal(t, 1.0, f.PixelAspectRatio())

	f.AspectByte = 0x31
	assert.InDelta(t, (49.0+15)/64.0, f.PixelAspectRatio(), 1e-9)
}
