package lzw

import "fmt"

// Decoder expands GIF LZW code streams directly into a destination
// byte slice, using the slice itself as the string table: once a
// string has been written to out, every later dictionary entry built
// on top of it stores only where that occurrence starts, how long it
// is, and the single extra byte appended to it. Nothing is ever copied
// into a side table. This is the "output-as-dictionary" decoder from
// GIFLIB-turbo's DecodeLZW/LZWCopyBytes (gif_lib.c), restructured so
// the appended byte is cached directly instead of read back out of the
// buffer a second time — GIFLIB's lazy-completion handling for that
// byte isn't needed once it's kept in hand at entry-creation time.
type Decoder struct {
	offset []int32
	length []int32
	extra  []byte
}

// NewDecoder allocates the dictionary scratch tables. A single Decoder
// may be reused across frames of one file; it is not safe for
// concurrent use.
func NewDecoder() *Decoder {
	return &Decoder{
		offset: make([]int32, maxMaxCode),
		length: make([]int32, maxMaxCode),
		extra:  make([]byte, maxMaxCode),
	}
}

// Decode expands data (a raw LZW code stream, unchunked) into out,
// which must be sized to exactly the uncompressed length of the
// raster. minCodeSize is the LZW minimum code size stored in the
// image's sub-block header.
func (d *Decoder) Decode(data []byte, minCodeSize int, out []byte) error {
	if minCodeSize < 2 {
		minCodeSize = 2
	}
	clearCode := int32(1) << uint(minCodeSize)
	eoiCode := clearCode + 1
	firstCode := eoiCode + 1

	nbits := uint(minCodeSize + 1)
	nextlim := int32(1) << nbits
	nextcode := firstCode

	br := newBitReader(data)
	outPos := 0

	readCode := func() (int32, bool) {
		c, ok := br.readCode(nbits)
		return int32(c), ok
	}

	// write copies the already-known string for an existing code
	// (literal or dictionary entry, code < nextcode) to out[outPos:]
	// and returns where it started, how long it is, and its first
	// byte.
	write := func(code int32) (off, ln int32, first byte) {
		off = int32(outPos)
		if code < clearCode {
			if outPos >= len(out) {
				return off, 0, 0
			}
			out[outPos] = byte(code)
			outPos++
			return off, 1, byte(code)
		}
		o, l, e := d.offset[code], d.length[code], d.extra[code]
		if int64(outPos)+int64(l)+1 > int64(len(out)) {
			return off, 0, 0
		}
		copy(out[outPos:], out[o:o+l])
		outPos += int(l)
		out[outPos] = e
		outPos++
		return off, l + 1, out[o]
	}

	code, ok := readCode()
	if !ok {
		return fmt.Errorf("%w: no clear code", ErrTruncated)
	}
	if code != clearCode {
		return fmt.Errorf("%w: stream does not open with a clear code", ErrMalformed)
	}

	code, ok = readCode()
	if !ok {
		return fmt.Errorf("%w: no data after clear code", ErrTruncated)
	}
	for code == clearCode {
		// Tolerate any number of redundant clear codes at stream start,
		// matching DecodeLZW's continue-on-clear-while-oldcode-unset.
		code, ok = readCode()
		if !ok {
			return fmt.Errorf("%w: no data after clear code", ErrTruncated)
		}
	}
	if code == eoiCode {
		return nil
	}
	if code >= clearCode {
		return fmt.Errorf("%w: first code after clear must be a literal", ErrMalformed)
	}
	if outPos >= len(out) {
		return fmt.Errorf("%w", ErrOutputFull)
	}
	prevOff, prevLen := int32(outPos), int32(1)
	out[outPos] = byte(code)
	outPos++
	oldcode := code

	for {
		code, ok = readCode()
		if !ok {
			return fmt.Errorf("%w: no EOI code", ErrTruncated)
		}
		if code == eoiCode {
			return nil
		}
		if code == clearCode {
			nbits = uint(minCodeSize + 1)
			nextlim = int32(1) << nbits
			nextcode = firstCode

			for {
				// Redundant clears immediately after this one are
				// tolerated the same way: keep consuming them (the reset
				// above is idempotent) until a non-clear code appears.
				code, ok = readCode()
				if !ok {
					return fmt.Errorf("%w: no data after clear code", ErrTruncated)
				}
				if code != clearCode {
					break
				}
			}
			if code == eoiCode {
				return nil
			}
			if code >= clearCode {
				return fmt.Errorf("%w: literal expected after clear code", ErrMalformed)
			}
			if outPos >= len(out) {
				return fmt.Errorf("%w", ErrOutputFull)
			}
			prevOff, prevLen = int32(outPos), 1
			out[outPos] = byte(code)
			outPos++
			oldcode = code
			continue
		}

		var off, ln int32
		var first byte
		switch {
		case code < nextcode:
			off, ln, first = write(code)
			if ln == 0 {
				return fmt.Errorf("%w", ErrOutputFull)
			}
		case code == nextcode:
			// KwKwK: the dictionary doesn't have this code yet because
			// it is the very entry about to be created. Its string is
			// oldcode's string followed by oldcode's own first byte.
			var oldFirst byte
			off, ln, oldFirst = write(oldcode)
			if ln == 0 {
				return fmt.Errorf("%w", ErrOutputFull)
			}
			if outPos >= len(out) {
				return fmt.Errorf("%w", ErrOutputFull)
			}
			out[outPos] = oldFirst
			outPos++
			ln++
			first = oldFirst
		default:
			return fmt.Errorf("%w: code %d seen before code %d was assigned", ErrMalformed, code, nextcode)
		}

		if nextcode < maxMaxCode {
			d.offset[nextcode] = prevOff
			d.length[nextcode] = prevLen
			d.extra[nextcode] = first
			nextcode++
			if nextcode >= nextlim && nbits < maxCodeLen {
				nbits++
				nextlim = int32(1) << nbits
			}
		}
		// A full dictionary keeps decoding without learning new strings
		// until the encoder emits an explicit clear code; nextcode simply
		// stops advancing once capped at maxMaxCode.

		prevOff, prevLen = off, ln
		oldcode = code
	}
}
