package angif

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// File's read/write lifecycle mirrors gif_lib.c's GifFileType handle:
// opening validates the container (signature, logical screen
// descriptor, global color map) without yet decoding any frames;
// Slurp performs the actual per-frame decode, matching the
// DGifOpenFileHandle / DGifSlurp split. Encoding is the reverse: open
// a destination, accumulate frames with AppendFrame, then Spew writes
// the whole stream at once (EGifSpew has no incremental mode either).
type fileMode int

const (
	modeClosed fileMode = iota
	modeRead
	modeWrite
)

type readState struct {
	raw []byte
	pos int
}

type writeState struct {
	w      io.Writer
	closer io.Closer
}

// OpenRead opens path and validates its GIF header, returning a File
// ready for Slurp. It fails when the file can't be opened, is not a
// GIF, or ends inside its header or global color map (ErrEOFTooSoon).
func OpenRead(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(ErrOpenFailed, err, "opening "+path+" for read")
	}
	f, err := OpenReadBytes(data)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// OpenReadBytes validates data's GIF header and returns a File ready
// for Slurp, without touching the filesystem.
func OpenReadBytes(data []byte) (*File, error) {
	f, pos, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	f.mode = modeRead
	f.read = &readState{raw: data, pos: pos}
	return f, nil
}

// Slurp decodes every frame between the header and the trailer.
// A second call returns ErrNotReadable. Mirrors gif_lib.c's DGifSlurp.
func (f *File) Slurp() error {
	if f.mode != modeRead {
		return newError(ErrNotReadable, "file was not opened for read")
	}
	if f.read == nil {
		return newError(ErrNotReadable, "file already slurped or closed")
	}
	err := parseFrames(f, f.read.raw, f.read.pos)
	f.read = nil
	return err
}

// CloseRead releases the buffered file contents. A second call returns
// ErrCloseFailed.
func (f *File) CloseRead() error {
	if f.mode != modeRead {
		return newError(ErrCloseFailed, "file was not opened for read")
	}
	f.read = nil
	f.mode = modeClosed
	return nil
}

// OpenWrite creates path (failing if it already exists and exclusive
// is true) and returns a File ready to accumulate frames via
// AppendFrame and emit them with Spew.
func OpenWrite(path string, exclusive bool) (*File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	fh, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if exclusive && errors.Is(err, os.ErrExist) {
			return nil, wrapError(ErrHasScreenDescriptor, err, "opening "+path+" for exclusive write")
		}
		return nil, wrapError(ErrWriteOpenFailed, err, "opening "+path+" for write")
	}
	f := &File{mode: modeWrite, write: &writeState{w: fh, closer: fh}}
	return f, nil
}

// OpenWriteWriter wraps an arbitrary io.Writer (a bytes.Buffer in
// tests, an HTTP response body, a pipe) as a write-mode File. If w also
// implements io.Closer, CloseWrite closes it too.
func OpenWriteWriter(w io.Writer) (*File, error) {
	f := &File{mode: modeWrite, write: &writeState{w: w}}
	if c, ok := w.(io.Closer); ok {
		f.write.closer = c
	}
	return f, nil
}

// Spew serializes the accumulated frames and writes the full GIF
// stream. Mirrors gif_lib.c's EGifSpew.
func (f *File) Spew() error {
	if f.mode != modeWrite || f.write == nil {
		return newError(ErrNotWriteable, "file was not opened for write")
	}
	return Serialize(f, f.write.w)
}

// CloseWrite closes the underlying writer, if it is closable. A second
// call returns ErrWriteCloseFailed.
func (f *File) CloseWrite() error {
	if f.mode != modeWrite {
		return newError(ErrWriteCloseFailed, "file was not opened for write")
	}
	if f.write != nil && f.write.closer != nil {
		if err := f.write.closer.Close(); err != nil {
			return wrapError(ErrWriteCloseFailed, err, "closing output")
		}
	}
	f.write = nil
	f.mode = modeClosed
	return nil
}
