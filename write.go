package pnccd

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"

	"github.com/scigolib/pnccd/internal/utils"
)

// FrameRecord pairs a frame header with its pixel payload for encoding.
// Pixels are given in the on-disk row order, height-major: sample (y, x)
// at index y*width+x.
type FrameRecord struct {
	Header FrameHeader
	Pixels []uint16
}

// Writer encodes frms6 files onto a filesystem. It is the write-side
// counterpart of Reader, used to produce simulation output and the
// synthetic files the tests read back.
type Writer struct {
	fs afero.Fs
}

// NewWriter returns a Writer over the operating system's filesystem.
func NewWriter() *Writer {
	return &Writer{fs: afero.NewOsFs()}
}

// NewWriterFS returns a Writer over fs.
func NewWriterFS(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Write encodes a complete frms6 file at path: the file header followed by
// one record per frame. The frame geometry comes from hdr.TrueWidth and
// hdr.TrueMaxHeight, and every frame's payload must match it exactly so the
// resulting file satisfies the frms6 size invariant.
func (w *Writer) Write(path string, hdr FileHeader, frames []FrameRecord) error {
	width := int(hdr.TrueWidth)
	height := int(hdr.TrueMaxHeight)
	samples := width * height

	for i, fr := range frames {
		if len(fr.Pixels) != samples {
			return fmt.Errorf("frame %d: %d samples, want %d for %dx%d",
				i, len(fr.Pixels), samples, width, height)
		}
	}

	head, err := EncodeFileHeader(hdr)
	if err != nil {
		return err
	}

	f, err := w.fs.Create(path)
	if err != nil {
		return utils.WrapError("create "+path, err)
	}

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(head); err != nil {
		_ = f.Close()
		return utils.WrapError("write file header", err)
	}

	ord := utils.NativeOrder
	row := make([]byte, 2)
	for i, fr := range frames {
		if _, err := bw.Write(EncodeFrameHeader(fr.Header)); err != nil {
			_ = f.Close()
			return utils.WrapError(fmt.Sprintf("write frame %d header", i), err)
		}

		for _, sample := range fr.Pixels {
			ord.PutUint16(row, sample)
			if _, err := bw.Write(row); err != nil {
				_ = f.Close()
				return utils.WrapError(fmt.Sprintf("write frame %d payload", i), err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return utils.WrapError("flush", err)
	}
	return f.Close()
}
