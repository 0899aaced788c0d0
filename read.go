package pnccd

import (
	"errors"
	"fmt"
	"io"

	"github.com/scigolib/pnccd/internal/utils"
)

// Range selects the half-open frame interval [Start, End).
type Range struct {
	Start int
	End   int
}

// ReadFrames reads the frames selected by rng into a FrameStack, seeking
// directly to the first requested record and decoding payloads only.
//
// width and height are taken from the caller, not from the file header:
// callers sometimes read with an overridden geometry on purpose, so the two
// are never cross-checked. A mismatched geometry yields misaligned slicing,
// not an error. Byte-level failures are still reported: a range whose
// records run past end of file fails with ErrTruncatedFrame.
func (r *Reader) ReadFrames(path string, rng Range, width, height int) (*FrameStack, error) {
	if rng.Start < 0 || rng.End < 0 || rng.Start >= rng.End {
		return nil, fmt.Errorf("frame range [%d, %d): %w", rng.Start, rng.End, ErrInvalidRange)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("frame geometry %dx%d: %w", width, height, ErrInvalidRange)
	}

	count := rng.End - rng.Start
	samples, err := utils.SampleCount(uint64(width), uint64(height), uint64(count))
	if err != nil {
		return nil, fmt.Errorf("frame range [%d, %d) at %dx%d: %v: %w",
			rng.Start, rng.End, width, height, err, ErrInvalidRange)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, utils.WrapError("open "+path, err)
	}
	defer func() { _ = f.Close() }()

	frameBytes := FrameBytes(width, height)
	record := int64(FrameHeaderSize) + int64(frameBytes)
	offset := int64(FileHeaderSize) + int64(rng.Start)*record
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, utils.WrapError(fmt.Sprintf("seek to frame %d", rng.Start), err)
	}

	stack := &FrameStack{
		Width:  width,
		Height: height,
		Frames: count,
		Data:   make([]uint16, samples),
	}

	raw := utils.GetBuffer(frameBytes)
	defer utils.ReleaseBuffer(raw)

	for i := 0; i < count; i++ {
		// The frame header is skipped, not decoded, on this path.
		if _, err := f.Seek(FrameHeaderSize, io.SeekCurrent); err != nil {
			return nil, utils.WrapError(fmt.Sprintf("skip frame %d header", rng.Start+i), err)
		}

		if _, err := io.ReadFull(f, raw); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("frame %d payload: %w", rng.Start+i, ErrTruncatedFrame)
			}
			return nil, utils.WrapError(fmt.Sprintf("read frame %d payload", rng.Start+i), err)
		}

		orientFrame(raw, stack.Frame(i), width, height)
	}

	return stack, nil
}

// ReadAllFrames resolves the shape of the file at path and reads every
// frame with the geometry its header declares. A file with zero frames
// yields an empty stack.
func (r *Reader) ReadAllFrames(path string) (*FrameStack, error) {
	shape, err := r.Shape(path)
	if err != nil {
		return nil, err
	}

	if shape.Frames == 0 {
		return &FrameStack{Width: shape.Width, Height: shape.Height}, nil
	}

	return r.ReadFrames(path, Range{0, shape.Frames}, shape.Width, shape.Height)
}

// orientFrame decodes one raw payload into dst in the canonical axis order.
// The payload is row-major with height varying slowest: raw sample (y, x)
// sits at byte offset 2*(y*width+x). The canonical order is x-major, so it
// lands at dst[x*height+y]. This is the one place the axis convention of
// the wire format meets the convention of the in-memory stack.
func orientFrame(raw []byte, dst []uint16, width, height int) {
	ord := utils.NativeOrder
	for y := 0; y < height; y++ {
		row := raw[y*width*2 : (y+1)*width*2]
		for x := 0; x < width; x++ {
			dst[x*height+y] = ord.Uint16(row[2*x:])
		}
	}
}
