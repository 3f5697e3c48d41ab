package angif

// ImageDescriptor is a GIF image descriptor block: placement within
// the logical screen, interlace flag, and an optional local color map
// that overrides the file's global one for this frame only.
type ImageDescriptor struct {
	Left, Top     int
	Width, Height int
	Interlace     bool
	ColorMap      *ColorMap
}

// ExtensionBlock is one raw extension sub-block as it appears between
// frames: Function is the introducer byte (0xF9 graphic control, 0xFE
// comment, 0xFF application, 0x01 plain text) for the first block of a
// run, or 0 for a continuation block that belongs to the one before it.
type ExtensionBlock struct {
	Function byte
	Bytes    []byte
}

// Frame is one decoded image plus whatever extension blocks preceded
// it. Raster holds one byte per pixel, row-major, already in
// natural (post-deinterlace) top-to-bottom order regardless of how the
// source file stored it.
type Frame struct {
	Desc       ImageDescriptor
	Raster     []byte
	Extensions []ExtensionBlock
}

// EffectiveColorMap returns the map that applies to this frame: its
// own local map if set, otherwise the file's global map. The second
// return value is false when neither exists — the image descriptor's
// packed byte had its local-map bit clear and the file carries no
// global map, an explicitly undefined case this package accepts rather
// than rejects (see DESIGN.md).
func (f *Frame) EffectiveColorMap(file *File) (*ColorMap, bool) {
	if f.Desc.ColorMap != nil {
		return f.Desc.ColorMap, true
	}
	if file != nil && file.GlobalColorMap != nil {
		return file.GlobalColorMap, true
	}
	return nil, false
}

// File is the in-memory model of a whole GIF: the logical screen
// descriptor, the optional global color map, and the sequence of
// frames between it and the trailer.
type File struct {
	Width, Height        int
	ColorResolution      int
	BackgroundColorIndex byte
	AspectByte           byte
	GlobalColorMap       *ColorMap
	Frames               []*Frame

	path  string
	mode  fileMode
	read  *readState
	write *writeState
}

// PixelAspectRatio converts the logical screen descriptor's aspect
// byte into the ratio it encodes. A zero byte (the common case) means
// "no aspect information", reported here as the square 1.0 ratio.
func (f *File) PixelAspectRatio() float64 {
	if f.AspectByte == 0 {
		return 1.0
	}
	return (float64(f.AspectByte) + 15) / 64.0
}

// AppendFrame deep-copies src into the file's frame list and returns
// the file's own copy, so the caller is free to mutate or discard src
// afterward. Mirrors gif_lib.c's GifMakeSavedImage, which heap-copies a
// SavedImage's color map, raster, and extension blocks rather than
// aliasing the caller's memory.
func (f *File) AppendFrame(src *Frame) (*Frame, error) {
	if src == nil {
		return nil, newError(ErrNotEnoughMemory, "cannot append a nil frame")
	}
	cp := &Frame{Desc: src.Desc}
	cp.Desc.ColorMap = src.Desc.ColorMap.Clone()

	cp.Raster = make([]byte, len(src.Raster))
	copy(cp.Raster, src.Raster)

	if src.Extensions != nil {
		cp.Extensions = make([]ExtensionBlock, len(src.Extensions))
		for i, e := range src.Extensions {
			b := make([]byte, len(e.Bytes))
			copy(b, e.Bytes)
			cp.Extensions[i] = ExtensionBlock{Function: e.Function, Bytes: b}
		}
	}

	f.Frames = append(f.Frames, cp)
	return cp, nil
}

// DropLastFrame removes the most recently appended frame, if any.
// Mirrors gif_lib.c's FreeLastSavedImage.
func (f *File) DropLastFrame() {
	if len(f.Frames) == 0 {
		return
	}
	f.Frames = f.Frames[:len(f.Frames)-1]
}
