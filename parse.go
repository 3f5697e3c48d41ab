package angif

import (
	"github.com/pixeldeck/angif/internal/lzw"
)

const (
	gifStampLen = 6
	trailerByte = 0x3B
	extIntro    = 0x21
	imageIntro  = 0x2C
)

var (
	gif87Stamp = [gifStampLen]byte{'G', 'I', 'F', '8', '7', 'a'}
	gif89Stamp = [gifStampLen]byte{'G', 'I', 'F', '8', '9', 'a'}
)

func le16(b []byte) int {
	return int(b[0]) | int(b[1])<<8
}

// Parse decodes a complete in-memory GIF byte stream into a File in
// one call. OpenReadBytes/Slurp split this into the same two steps
// gif_lib.c does (DGifOpenFileHandle validates the container, DGifSlurp
// decodes every frame); Parse is the convenience path for callers that
// always want the whole file at once.
func Parse(data []byte) (*File, error) {
	f, pos, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := parseFrames(f, data, pos); err != nil {
		return nil, err
	}
	return f, nil
}

// parseHeader validates the signature and decodes the logical screen
// descriptor plus optional global color map, returning the offset
// where frame data begins.
func parseHeader(data []byte) (*File, int, error) {
	if len(data) < 13 {
		return nil, 0, newError(ErrEOFTooSoon, "file shorter than a logical screen descriptor")
	}
	if !matchesStamp(data[:gifStampLen]) {
		return nil, 0, newError(ErrNotGIFFile, "missing GIF87a/GIF89a signature")
	}

	f := &File{
		Width:           le16(data[6:8]),
		Height:          le16(data[8:10]),
		ColorResolution: int((data[10]&0x70)>>4) + 1,
	}
	packed := data[10]
	f.BackgroundColorIndex = data[11]
	f.AspectByte = data[12]

	pos := 13
	if packed&0x80 != 0 {
		count := 1 << (int(packed&0x07) + 1)
		cm, n, err := readColorMap(data, pos, count, packed&0x08 != 0)
		if err != nil {
			return nil, 0, err
		}
		f.GlobalColorMap = cm
		pos = n
	}
	return f, pos, nil
}

// parseFrames walks every extension and image block from pos to the
// trailer, appending decoded frames to f. Mirrors gif_lib.c's
// GIFPreprocess/DGifSlurp frame loop. A short read (a missing trailer,
// a truncated extension or image record) ends parsing without error:
// the record in progress is dropped and earlier frames are kept.
func parseFrames(f *File, data []byte, pos int) error {
	dec := lzw.NewDecoder()
	var pendingExts []ExtensionBlock

	for {
		if pos >= len(data) {
			return nil
		}
		switch data[pos] {
		case trailerByte:
			return nil

		case extIntro:
			if pos+2 > len(data) {
				return nil
			}
			function := data[pos+1]
			exts, n, err := readExtensionBlocks(data, pos+2, function)
			if err != nil {
				// readExtensionBlocks fails only on a short read.
				return nil
			}
			pendingExts = append(pendingExts, exts...)
			pos = n

		case imageIntro:
			frame, n, err := readImage(data, pos+1, dec)
			if err != nil {
				if e, ok := err.(*Error); ok && e.Code == ErrEOFTooSoon {
					return nil
				}
				return err
			}
			frame.Extensions = pendingExts
			pendingExts = nil
			f.Frames = append(f.Frames, frame)
			pos = n

		default:
			// Mirrors gif_lib.c's GIFPreprocess default case: an
			// unrecognized record type stops parsing but is not itself
			// an error — only the partially-built frame in progress (if
			// any) is dropped, and whatever frames already landed in
			// f.Frames are kept.
			return nil
		}
	}
}

func matchesStamp(b []byte) bool {
	if string(b) == string(gif87Stamp[:]) || string(b) == string(gif89Stamp[:]) {
		return true
	}
	return false
}

// readColorMap reads count RGB triples starting at pos and returns the
// built map plus the offset just past it.
func readColorMap(data []byte, pos, count int, sortFlag bool) (*ColorMap, int, error) {
	need := pos + count*3
	if need > len(data) {
		return nil, pos, newError(ErrEOFTooSoon, "color table truncated")
	}
	colors := make([]Color, count)
	for i := 0; i < count; i++ {
		o := pos + i*3
		colors[i] = Color{R: data[o], G: data[o+1], B: data[o+2]}
	}
	return &ColorMap{Colors: colors, SortFlag: sortFlag}, need, nil
}

// readExtensionBlocks reads the sub-block chain of one extension,
// starting at pos (pointing at the first length byte). The first
// sub-block becomes a record tagged with the introducer's function
// byte; every further sub-block before the terminator becomes its own
// continuation record tagged 0, matching the concrete scenario of a
// multi-sub-block application extension producing two extension
// records. Mirrors the ExtensionBlock bookkeeping in gif_lib.c's
// GIFPreprocess.
func readExtensionBlocks(data []byte, pos int, function byte) ([]ExtensionBlock, int, error) {
	var blocks []ExtensionBlock
	first := true
	for {
		if pos >= len(data) {
			return nil, pos, newError(ErrEOFTooSoon, "extension sub-block length missing")
		}
		n := int(data[pos])
		pos++
		if n == 0 {
			return blocks, pos, nil
		}
		if pos+n > len(data) {
			return nil, pos, newError(ErrEOFTooSoon, "extension sub-block truncated")
		}
		payload := make([]byte, n)
		copy(payload, data[pos:pos+n])
		pos += n

		fn := byte(0)
		if first {
			fn = function
			first = false
		}
		blocks = append(blocks, ExtensionBlock{Function: fn, Bytes: payload})
	}
}

// readImage reads one image descriptor, its optional local color map,
// and its LZW-compressed raster, starting just past the 0x2C
// introducer. It returns the decoded frame (without extensions
// attached — the caller owns stitching those in) and the offset just
// past the image data.
func readImage(data []byte, pos int, dec *lzw.Decoder) (*Frame, int, error) {
	if pos+9 > len(data) {
		return nil, pos, newError(ErrEOFTooSoon, "truncated image descriptor")
	}
	desc := ImageDescriptor{
		Left:   le16(data[pos : pos+2]),
		Top:    le16(data[pos+2 : pos+4]),
		Width:  le16(data[pos+4 : pos+6]),
		Height: le16(data[pos+6 : pos+8]),
	}
	packed := data[pos+8]
	desc.Interlace = packed&0x40 != 0
	pos += 9

	if packed&0x80 != 0 {
		count := 1 << (int(packed&0x07) + 1)
		cm, n, err := readColorMap(data, pos, count, packed&0x20 != 0)
		if err != nil {
			return nil, pos, err
		}
		desc.ColorMap = cm
		pos = n
	}

	if pos >= len(data) {
		return nil, pos, newError(ErrEOFTooSoon, "missing LZW minimum code size")
	}
	minCodeSize := int(data[pos])
	pos++

	lzwData, n, err := dechunk(data, pos)
	if err != nil {
		return nil, pos, err
	}
	pos = n

	raster := make([]byte, desc.Width*desc.Height)
	if err := dec.Decode(lzwData, minCodeSize, raster); err != nil {
		return nil, pos, wrapError(ErrImageDefect, err, "decoding image raster")
	}
	if desc.Interlace {
		raster = deinterlaceRows(raster, desc.Width, desc.Height)
	}

	return &Frame{Desc: desc, Raster: raster}, pos, nil
}
