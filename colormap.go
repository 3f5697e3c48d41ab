package angif

// Color is one RGB triple, stored as it appears on the wire: no alpha,
// no color-space conversion.
type Color struct {
	R, G, B byte
}

// ColorMap is a GIF color table — global or local. Its color count,
// len(Colors), is always a power of two per the format's packed-byte
// encoding; the size field in the logical screen descriptor's or the
// image descriptor's packed byte stores BitsPerPixel()-1.
type ColorMap struct {
	Colors   []Color
	SortFlag bool
}

// bitsForCount returns k such that count == 1<<k, for the smallest
// such k with 1<<k >= count. Mirrors gif_lib.c's GifBitSize.
func bitsForCount(count int) int {
	bits := 1
	for 1<<uint(bits) < count {
		bits++
	}
	return bits
}

// NewColorMap allocates a color map of exactly count entries, which
// must be a power of two from 2 to 256 (2, 4, ... 256), matching GIF's
// packed-byte size encoding. seed, if non-nil, is copied in as the
// initial colors; any remaining entries are left black. A nil seed
// yields an all-black map of the requested size.
func NewColorMap(count int, seed []Color) (*ColorMap, error) {
	if count < 2 || count > 256 || count != 1<<uint(bitsForCount(count)) {
		return nil, newError(ErrNotEnoughMemory, "color count %d is not a power of two in [2,256]", count)
	}
	cm := &ColorMap{Colors: make([]Color, count)}
	copy(cm.Colors, seed)
	return cm, nil
}

// Free does nothing: a ColorMap's memory is reclaimed by the garbage
// collector once it is no longer referenced.
func (cm *ColorMap) Free() {}

// BitsPerPixel reports log2 of this map's color count; the packed-byte
// size field written for the map is one less.
func (cm *ColorMap) BitsPerPixel() int {
	return bitsForCount(len(cm.Colors))
}

// Clone returns an independent copy, so a frame can keep its own local
// map after being appended from a source that may be mutated or
// discarded afterward.
func (cm *ColorMap) Clone() *ColorMap {
	if cm == nil {
		return nil
	}
	out := &ColorMap{Colors: make([]Color, len(cm.Colors)), SortFlag: cm.SortFlag}
	copy(out.Colors, cm.Colors)
	return out
}

// UnionColorMap merges two color maps into one table big enough to
// hold both, remapping b's indices into the tail of the result.
// translate[i] gives the index in the unioned map that a pixel value
// i in b's original space now maps to. Declared but left unimplemented
// in gif_lib.h (GifUnionColorMap has no body in gif_lib.c); this is a
// fresh implementation of its documented contract — grow to the
// smallest power of two that fits every distinct color in a, then b,
// deduplicating exact RGB matches to avoid needless growth.
func UnionColorMap(a, b *ColorMap) (merged *ColorMap, translate []byte, err error) {
	if a == nil {
		a = &ColorMap{}
	}
	seen := make(map[Color]int, len(a.Colors)+len(b.Colors))
	colors := make([]Color, 0, len(a.Colors)+len(b.Colors))
	for _, c := range a.Colors {
		if _, ok := seen[c]; !ok {
			seen[c] = len(colors)
			colors = append(colors, c)
		}
	}

	translate = make([]byte, len(b.Colors))
	for i, c := range b.Colors {
		idx, ok := seen[c]
		if !ok {
			idx = len(colors)
			seen[c] = idx
			colors = append(colors, c)
		}
		if idx > 255 {
			return nil, nil, newError(ErrDataTooBig, "union of color maps exceeds 256 entries")
		}
		translate[i] = byte(idx)
	}

	size := 1
	for size < len(colors) {
		size <<= 1
	}
	merged = &ColorMap{Colors: make([]Color, size)}
	copy(merged.Colors, colors)
	return merged, translate, nil
}
