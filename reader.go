// Package pnccd reads pnCCD detector data in the frms6 frame-stream format:
// a fixed 1024-byte file header followed by frame records, each a fixed
// 64-byte frame header plus a width*height payload of 16-bit samples.
//
// Payloads are stored row-major with height varying slowest; every read path
// reorients them into the canonical (x, y, frame) axis order expected by
// downstream tooling. All multi-byte values are read in the host's native
// byte order, matching the machines that produce these files.
//
// Every entry point performs its own scoped open/read/close cycle; no file
// handles are cached or shared between calls.
package pnccd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/scigolib/pnccd/internal/utils"
)

// Reader reads frms6 files from a filesystem. The default reads from the
// OS; tests supply an in-memory filesystem instead.
type Reader struct {
	fs afero.Fs
}

// NewReader returns a Reader over the operating system's filesystem.
func NewReader() *Reader {
	return &Reader{fs: afero.NewOsFs()}
}

// NewReaderFS returns a Reader over fs.
func NewReaderFS(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// defaultReader backs the package-level convenience functions.
var defaultReader = NewReader()

// FileHeader reads and decodes the leading 1024-byte header of the file at
// path.
func (r *Reader) FileHeader(path string) (FileHeader, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return FileHeader{}, utils.WrapError("open "+path, err)
	}
	defer func() { _ = f.Close() }()

	return readFileHeader(f)
}

// Shape resolves the frame geometry and frame count of the file at path
// from its header and total size. It fails with ErrCorruptFile when the
// size is not an exact multiple of the per-frame record size.
func (r *Reader) Shape(path string) (Shape, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return Shape{}, utils.WrapError("open "+path, err)
	}
	defer func() { _ = f.Close() }()

	_, shape, err := readShape(f)
	return shape, err
}

// readFileHeader decodes the file header from the current position of f,
// leaving the read position at the first frame record.
func readFileHeader(f afero.File) (FileHeader, error) {
	buf := utils.GetBuffer(FileHeaderSize)
	defer utils.ReleaseBuffer(buf)

	n, err := io.ReadFull(f, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return FileHeader{}, fmt.Errorf("file header: have %d bytes, need %d: %w",
				n, FileHeaderSize, ErrMalformedHeader)
		}
		return FileHeader{}, utils.WrapError("read file header", err)
	}

	return DecodeFileHeader(buf)
}

// readShape reads the file header and stats the open file, returning both
// the header and the resolved shape.
func readShape(f afero.File) (FileHeader, Shape, error) {
	hdr, err := readFileHeader(f)
	if err != nil {
		return FileHeader{}, Shape{}, err
	}

	fi, err := f.Stat()
	if err != nil {
		return FileHeader{}, Shape{}, utils.WrapError("stat", err)
	}

	shape, err := resolveShape(hdr, fi.Size())
	if err != nil {
		return FileHeader{}, Shape{}, err
	}
	return hdr, shape, nil
}

// ReadFileHeader reads the file header of the frms6 file at path using the
// OS filesystem.
func ReadFileHeader(path string) (FileHeader, error) {
	return defaultReader.FileHeader(path)
}

// ResolveShape resolves the shape of the frms6 file at path using the OS
// filesystem.
func ResolveShape(path string) (Shape, error) {
	return defaultReader.Shape(path)
}

// ReadFrameHeaders scans every frame header of the frms6 file at path using
// the OS filesystem.
func ReadFrameHeaders(path string) (*FrameHeaderSet, error) {
	return defaultReader.FrameHeaders(path)
}

// ReadFrames reads the frame range rng of the frms6 file at path using the
// OS filesystem. See Reader.ReadFrames for the geometry contract.
func ReadFrames(path string, rng Range, width, height int) (*FrameStack, error) {
	return defaultReader.ReadFrames(path, rng, width, height)
}

// ReadAllFrames reads every frame of the frms6 file at path using the OS
// filesystem, with the geometry declared in its header.
func ReadAllFrames(path string) (*FrameStack, error) {
	return defaultReader.ReadAllFrames(path)
}
