package angif

// interlaceJump is the GIF interlace row-delta table: within a pass,
// consecutive stored rows are interlaceJump[2*pass] natural rows
// apart; once a pass runs off the bottom of the image, the next pass
// starts at natural row interlaceJump[2*pass+1]. Ported from gif_lib.c's
// cGIFPass.
var interlaceJump = [8]int{8, 0, 8, 4, 4, 2, 2, 1}

// interlaceRowOrder returns, for an image of the given height, the
// sequence of natural row indices in GIF's four-pass storage order:
// every 8th row starting at 0, then every 8th starting at 4, then
// every 4th starting at 2, then every other row starting at 1.
func interlaceRowOrder(height int) []int {
	order := make([]int, 0, height)
	pass := 0
	y := 0
	for i := 0; i < height; i++ {
		order = append(order, y)
		y += interlaceJump[pass*2]
		for y >= height && pass < 3 {
			// Skip passes that have no rows in a short image.
			pass++
			y = interlaceJump[pass*2+1]
		}
	}
	return order
}

// interlaceRows reorders a row-major raster from natural top-to-bottom
// order into GIF's interlaced storage order: stored row i becomes
// natural row order[i]. Mirrors gif_lib.c's GIFInterlace.
func interlaceRows(raster []byte, width, height int) []byte {
	order := interlaceRowOrder(height)
	out := make([]byte, len(raster))
	for i, y := range order {
		copy(out[i*width:(i+1)*width], raster[y*width:(y+1)*width])
	}
	return out
}

// deinterlaceRows reverses interlaceRows: stored row i, read
// sequentially, is placed back at its natural row order[i]. Mirrors
// gif_lib.c's GifDeInterlace.
func deinterlaceRows(raster []byte, width, height int) []byte {
	order := interlaceRowOrder(height)
	out := make([]byte, len(raster))
	for i, y := range order {
		copy(out[y*width:(y+1)*width], raster[i*width:(i+1)*width])
	}
	return out
}
