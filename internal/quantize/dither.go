package quantize

import "github.com/pixeldeck/angif"

// DitheringKernel is an error-diffusion kernel: each row is
// {weight, dx, dy} describing how much of a pixel's quantization
// error spills onto the neighbor at (dx, dy).
type DitheringKernel [][3]float64

var (
	FalseFloydSteinberg = DitheringKernel{
		{3.0 / 8.0, 1, 0},
		{3.0 / 8.0, 0, 1},
		{2.0 / 8.0, 1, 1},
	}

	FloydSteinberg = DitheringKernel{
		{7.0 / 16.0, 1, 0},
		{3.0 / 16.0, -1, 1},
		{5.0 / 16.0, 0, 1},
		{1.0 / 16.0, 1, 1},
	}

	Stucki = DitheringKernel{
		{8.0 / 42.0, 1, 0},
		{4.0 / 42.0, 2, 0},
		{2.0 / 42.0, -2, 1},
		{4.0 / 42.0, -1, 1},
		{8.0 / 42.0, 0, 1},
		{4.0 / 42.0, 1, 1},
		{2.0 / 42.0, 2, 1},
		{1.0 / 42.0, -2, 2},
		{2.0 / 42.0, -1, 2},
		{4.0 / 42.0, 0, 2},
		{2.0 / 42.0, 1, 2},
		{1.0 / 42.0, 2, 2},
	}

	Atkinson = DitheringKernel{
		{1.0 / 8.0, 1, 0},
		{1.0 / 8.0, 2, 0},
		{1.0 / 8.0, -1, 1},
		{1.0 / 8.0, 0, 1},
		{1.0 / 8.0, 1, 1},
		{1.0 / 8.0, 0, 2},
	}
)

// Method names a dithering kernel, or "none" for plain nearest-color
// indexing.
type Method string

const (
	MethodNone                Method = "none"
	MethodFloydSteinberg      Method = "FloydSteinberg"
	MethodFalseFloydSteinberg Method = "FalseFloydSteinberg"
	MethodStucki              Method = "Stucki"
	MethodAtkinson            Method = "Atkinson"
)

func kernelFor(method Method) (DitheringKernel, bool) {
	switch method {
	case MethodFloydSteinberg:
		return FloydSteinberg, true
	case MethodFalseFloydSteinberg:
		return FalseFloydSteinberg, true
	case MethodStucki:
		return Stucki, true
	case MethodAtkinson:
		return Atkinson, true
	default:
		return nil, false
	}
}

// Quantize trains a 256-color palette over pixels (packed R,G,B
// triples, width*height*3 bytes) with NeuQuant, then maps every pixel
// onto that palette — applying the named error-diffusion kernel if
// method names one — and returns a raster ready to sit in a
// Frame.Raster alongside the returned color map.
func Quantize(pixels []byte, width, height, samplefac int, method Method, serpentine bool) ([]byte, *angif.ColorMap, error) {
	nq := New(pixels, samplefac)
	paletteColors := nq.BuildPalette()
	cm, err := angif.NewColorMap(netsize, paletteColors)
	if err != nil {
		return nil, nil, err
	}

	kernel, dithering := kernelFor(method)

	data := make([]byte, len(pixels))
	copy(data, pixels)

	indexed := make([]byte, width*height)
	direction := 1

	for y := 0; y < height; y++ {
		if serpentine {
			direction = -direction
		}

		x, xEnd := 0, width
		if direction < 0 {
			x, xEnd = width-1, -1
		}

		for x != xEnd {
			idx := y*width + x
			o := idx * 3
			r1, g1, b1 := int(data[o]), int(data[o+1]), int(data[o+2])

			colorIdx := nq.LookupRGB(byte(r1), byte(g1), byte(b1))
			indexed[idx] = byte(colorIdx)

			if dithering {
				pr, pg, pb := paletteColors[colorIdx].R, paletteColors[colorIdx].G, paletteColors[colorIdx].B
				er := r1 - int(pr)
				eg := g1 - int(pg)
				eb := b1 - int(pb)

				for _, k := range kernel {
					dx, dy := int(k[1]), int(k[2])
					if direction < 0 {
						dx = -dx
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					w := k[0]
					no := (ny*width + nx) * 3
					data[no] = clamp(int(data[no]) + int(float64(er)*w))
					data[no+1] = clamp(int(data[no+1]) + int(float64(eg)*w))
					data[no+2] = clamp(int(data[no+2]) + int(float64(eb)*w))
				}
			}

			x += direction
		}
	}

	return indexed, cm, nil
}

func clamp(value int) byte {
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return byte(value)
}
