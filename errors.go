package angif

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code identifies the kind of failure an operation hit, independent of
// whatever text is attached to it. The numeric values are gif_lib.h's
// D_GIF_ERR_*/E_GIF_ERR_* values so a caller already familiar with
// that error taxonomy recognizes these at a glance; the names differ
// from gif_lib.h's because decode and encode failures share one enum
// here instead of two, so encode-side names that would collide with a
// decode-side one carry a Write prefix.
type Code int

// Decode-side failures (gif_lib.h's D_GIF_ERR_* range).
const (
	ErrOpenFailed         Code = 101
	ErrReadFailed         Code = 102
	ErrNotGIFFile         Code = 103
	ErrNoScreenDescriptor Code = 104
	ErrNoImageDescriptor  Code = 105
	ErrNoColorMap         Code = 106
	ErrWrongRecordType    Code = 107
	ErrDataTooBig         Code = 108
	ErrNotEnoughMemory    Code = 109
	ErrCloseFailed        Code = 110
	ErrNotReadable        Code = 111
	ErrImageDefect        Code = 112
	ErrEOFTooSoon         Code = 113
)

// Encode-side failures (gif_lib.h's E_GIF_ERR_* range).
const (
	ErrWriteOpenFailed      Code = 1
	ErrWriteFailed          Code = 2
	ErrHasScreenDescriptor  Code = 3
	ErrHasImageDescriptor   Code = 4
	ErrWriteNoColorMap      Code = 5
	ErrWriteDataTooBig      Code = 6
	ErrWriteNotEnoughMemory Code = 7
	ErrDiskFull             Code = 8
	ErrWriteCloseFailed     Code = 9
	ErrNotWriteable         Code = 10
)

var codeText = map[Code]string{
	ErrOpenFailed:           "failed to open the given file",
	ErrReadFailed:           "failed while reading from the given file",
	ErrNotGIFFile:           "data is not in GIF format",
	ErrNoScreenDescriptor:   "no screen descriptor detected",
	ErrNoImageDescriptor:    "no image descriptor detected",
	ErrNoColorMap:           "neither global nor local color map found",
	ErrWrongRecordType:      "wrong record type detected",
	ErrDataTooBig:           "number of pixels bigger than declared dimensions",
	ErrNotEnoughMemory:      "failed to allocate required memory",
	ErrCloseFailed:          "failed to close the given file",
	ErrNotReadable:          "given file was not opened for read",
	ErrImageDefect:          "image is defective, decoding aborted",
	ErrEOFTooSoon:           "image EOF detected before image complete",
	ErrWriteOpenFailed:      "failed to open the given file",
	ErrWriteFailed:          "failed while writing to the given file",
	ErrHasScreenDescriptor:  "screen descriptor already passed to the file",
	ErrHasImageDescriptor:   "image descriptor is still active",
	ErrWriteNoColorMap:      "neither global nor local color map given",
	ErrWriteDataTooBig:      "number of pixels bigger than declared dimensions",
	ErrWriteNotEnoughMemory: "failed to allocate required memory",
	ErrDiskFull:             "write failed, disk is full",
	ErrWriteCloseFailed:     "failed to close the given file",
	ErrNotWriteable:         "given file was not opened for write",
}

// String renders a Code using the same phrasing gif_lib.c's
// GifErrorString returns for each numbered error.
func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown angif error code %d", int(c))
}

// Error is the error type every exported operation in this package
// returns on failure. It carries a stable Code alongside whatever
// caused it, wrapped with github.com/pkg/errors so %+v on the result
// prints a full cause chain back to the originating I/O or decode
// failure.
type Error struct {
	Code Code
	err  error
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, err: errors.Errorf(format, args...)}
}

func wrapError(code Code, cause error, context string) *Error {
	return &Error{Code: code, err: errors.Wrap(cause, context)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// Cause returns the root cause, following every github.com/pkg/errors
// annotation down the chain, matching that library's own Cause
// convention.
func (e *Error) Cause() error { return errors.Cause(e.err) }
