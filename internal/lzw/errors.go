package lzw

import "errors"

// Sentinel errors returned by Decode. The root angif package wraps
// these with github.com/pkg/errors to attach a stable error code and
// positional context; internal/lzw itself stays on the standard
// library, mirroring gif_lib.c's DecodeLZW, which reports failures as
// plain D_GIF_ERR_* integers with no text formatting of its own.
var (
	// ErrTruncated means the bit stream ended before an EOI code.
	ErrTruncated = errors.New("lzw: code stream truncated before EOI")
	// ErrMalformed means the stream breaks LZW structure: it does not
	// open with a clear code, a clear code is followed by a non-literal,
	// or a code references a dictionary entry that does not exist yet
	// and is not the KwKwK special case.
	ErrMalformed = errors.New("lzw: code stream references an undefined code")
	// ErrOutputFull means more bytes were decoded than the caller's
	// buffer can hold, i.e. the raster's declared dimensions disagree
	// with the compressed data.
	ErrOutputFull = errors.New("lzw: decoded output exceeds destination buffer")
)
