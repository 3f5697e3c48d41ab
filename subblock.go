package angif

// maxSubBlockLen is GIF's sub-block size cap: each chunk is prefixed
// by a single length byte, so a chunk can never exceed 255 bytes.
const maxSubBlockLen = 255

// dechunk reads a run of length-prefixed sub-blocks starting at data[pos]
// (pos pointing at a length byte) and concatenates their payloads,
// stopping at the zero-length terminator block. It returns the joined
// payload and the offset just past the terminator.
//
// Mirrors the chunk-compaction loop in gif_lib.c's GIFPreprocess, which
// does the equivalent job in place with memmove to avoid a second
// buffer; this copies into a fresh slice instead, since nothing else in
// this package aliases the source buffer past parse.
func dechunk(data []byte, pos int) (payload []byte, next int, err error) {
	for {
		if pos >= len(data) {
			return nil, pos, newError(ErrEOFTooSoon, "sub-block length byte missing at offset %d", pos)
		}
		n := int(data[pos])
		pos++
		if n == 0 {
			return payload, pos, nil
		}
		if pos+n > len(data) {
			return nil, pos, newError(ErrEOFTooSoon, "sub-block of length %d truncated at offset %d", n, pos)
		}
		payload = append(payload, data[pos:pos+n]...)
		pos += n
	}
}

// chunk splits payload into maxSubBlockLen-byte sub-blocks, each
// preceded by its length byte, and appends the zero-length terminator.
// Mirrors gif_lib.c's EGifSpew, which emits LZW output 255 bytes at a
// time for exactly the same framing reason.
func chunk(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+len(payload)/maxSubBlockLen+2)
	for len(payload) > 0 {
		n := len(payload)
		if n > maxSubBlockLen {
			n = maxSubBlockLen
		}
		out = append(out, byte(n))
		out = append(out, payload[:n]...)
		payload = payload[n:]
	}
	out = append(out, 0)
	return out
}
