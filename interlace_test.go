package angif

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterlaceDeinterlaceIdentity(t *testing.T) {
	heights := []int{1, 2, 3, 4, 7, 8, 9, 16, 17, 33}
	for _, h := range heights {
		width := 5
		raster := make([]byte, width*h)
		for i := range raster {
			raster[i] = byte(i % 251)
		}

		stored := interlaceRows(raster, width, h)
		back := deinterlaceRows(stored, width, h)
		assert.Equal(t, raster, back, "height %d", h)
	}
}

func TestInterlaceRowOrderFourPass(t *testing.T) {
	// A textbook 16-row image visits rows 0,8 / 4,12 / 2,6,10,14 / odd rows,
	// in that order, per GIF's four interlace passes.
	order := interlaceRowOrder(16)
	want := []int{0, 8, 4, 12, 2, 6, 10, 14, 1, 3, 5, 7, 9, 11, 13, 15}
	assert.Equal(t, want, order)
}
