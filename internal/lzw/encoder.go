package lzw

// Encoder compresses an 8-bit-index raster into an LZW code stream
// using the double-hashed dictionary scheme from GIFLIB-turbo's
// EncodeLZW (gif_lib.c), ported to Go in the closure style of
// ManInM00N-nicogif's LZWEncoder.go (that port is the same compress.c
// lineage, one hash probe and output helper at a time).
//
// The dictionary is addressed by two parallel tables sized hashSize (a
// prime, 80% occupancy): hash holds the full 32-bit key of the string
// that produced a slot (-1 = empty), code holds the dictionary code
// assigned to that key.
type Encoder struct {
	hash []int32
	code []int32
}

const (
	hashSize   = 5003
	maxMaxCode = 4096 // dictionary capacity; also EOI+1's practical ceiling
)

// NewEncoder allocates the hash/code scratch tables. A single Encoder
// may be reused across frames of one file; it is not safe for
// concurrent use.
func NewEncoder() *Encoder {
	e := &Encoder{
		hash: make([]int32, hashSize),
		code: make([]int32, hashSize),
	}
	return e
}

func (e *Encoder) clearHash() {
	for i := range e.hash {
		e.hash[i] = -1
	}
}

// Encode compresses pixels (8-bit palette indices) using an initial
// code size of minCodeSize bits (raised to at least 2, as GIF requires).
// It returns the raw LZW code stream, unchunked.
func (e *Encoder) Encode(pixels []byte, minCodeSize int) []byte {
	if minCodeSize < 2 {
		minCodeSize = 2
	}
	clearCode := uint32(1) << uint(minCodeSize)
	eoiCode := clearCode + 1

	bw := newBitWriter()
	e.clearHash()

	nbits := uint(minCodeSize + 1)
	maxcode := uint32(1)<<nbits - 1
	freeEnt := eoiCode + 1

	bw.writeCode(clearCode, nbits)

	if len(pixels) == 0 {
		bw.writeCode(eoiCode, nbits)
		return bw.flush()
	}

	prev := int32(pixels[0])
pixels:
	for _, b := range pixels[1:] {
		c := int32(b)
		h := (c << 12) + prev
		s := uint32((c<<4)^prev) % hashSize

		if e.hash[s] == h {
			prev = e.code[s]
			continue
		}

		if e.hash[s] != -1 {
			disp := hashSize - int32(s)
			if s == 0 {
				disp = 1
			}
			si := int32(s)
			for {
				si -= disp
				if si < 0 {
					si += hashSize
				}
				if e.hash[si] == h {
					prev = e.code[si]
					continue pixels
				}
				if e.hash[si] == -1 {
					break
				}
			}
			s = uint32(si)
		}

		// No match: emit the string built so far and start a new one.
		bw.writeCode(uint32(prev), nbits)
		prev = c

		if freeEnt > maxcode {
			nbits++
			maxcode = uint32(1)<<nbits - 1
		}
		if freeEnt < maxMaxCode {
			e.code[s] = int32(freeEnt)
			e.hash[s] = h
			freeEnt++
		} else {
			freeEnt = clearCode + 2
			if nbits == maxCodeLen+1 {
				// Self-correcting: free_ent's overflow check can widen
				// nbits one bit early relative to the dictionary reset;
				// gif_lib.c corrects it right here (see DESIGN.md).
				nbits--
			}
			bw.writeCode(clearCode, nbits)
			e.clearHash()
			nbits = uint(minCodeSize + 1)
			maxcode = uint32(1)<<nbits - 1
		}
	}

	bw.writeCode(uint32(prev), nbits)
	bw.writeCode(eoiCode, nbits)
	return bw.flush()
}
