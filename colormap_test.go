package angif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColorMapRequiresPowerOfTwo(t *testing.T) {
	_, err := NewColorMap(3, nil)
	assert.Error(t, err)

	cm, err := NewColorMap(4, []Color{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Len(t, cm.Colors, 4)
	assert.Equal(t, Color{1, 2, 3}, cm.Colors[0])
	assert.Equal(t, Color{}, cm.Colors[2])
	assert.Equal(t, 2, cm.BitsPerPixel())
}

func TestColorMapCloneIsIndependent(t *testing.T) {
	cm, err := NewColorMap(2, []Color{{1, 1, 1}, {2, 2, 2}})
	require.NoError(t, err)

	clone := cm.Clone()
	clone.Colors[0] = Color{9, 9, 9}
	assert.Equal(t, Color{1, 1, 1}, cm.Colors[0])
	assert.Equal(t, Color{9, 9, 9}, clone.Colors[0])

	assert.Nil(t, (*ColorMap)(nil).Clone())
}

func TestUnionColorMapDeduplicatesAndTranslates(t *testing.T) {
	a, err := NewColorMap(2, []Color{{0, 0, 0}, {1, 1, 1}})
	require.NoError(t, err)
	b, err := NewColorMap(2, []Color{{1, 1, 1}, {2, 2, 2}})
	require.NoError(t, err)

	merged, translate, err := UnionColorMap(a, b)
	require.NoError(t, err)

	assert.Equal(t, Color{0, 0, 0}, merged.Colors[0])
	assert.Equal(t, Color{1, 1, 1}, merged.Colors[1])
	assert.Equal(t, Color{2, 2, 2}, merged.Colors[2])
	assert.Equal(t, byte(1), translate[0], "b's shared color maps to the existing slot")
	assert.Equal(t, byte(2), translate[1], "b's new color gets appended")
}
