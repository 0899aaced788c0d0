package pnccd

import (
	"errors"
	"fmt"
	"io"

	"github.com/scigolib/pnccd/internal/utils"
)

// FrameHeaderSet collects the frame header fields of every frame in a file
// into parallel slices, in file order. The field selection and the MaxHeight
// name (the header's TrueHeight field) follow the established metadata
// convention for frms6 scans.
type FrameHeaderSet struct {
	Start     []uint8
	Info      []uint8
	ID        []uint8
	Height    []uint8
	TvSec     []uint32
	TvUsec    []uint32
	Index     []uint32
	Temp      []float64
	MaxHeight []uint16
}

// Len returns the number of scanned frames.
func (s *FrameHeaderSet) Len() int {
	return len(s.Start)
}

func newFrameHeaderSet(frames int) *FrameHeaderSet {
	return &FrameHeaderSet{
		Start:     make([]uint8, 0, frames),
		Info:      make([]uint8, 0, frames),
		ID:        make([]uint8, 0, frames),
		Height:    make([]uint8, 0, frames),
		TvSec:     make([]uint32, 0, frames),
		TvUsec:    make([]uint32, 0, frames),
		Index:     make([]uint32, 0, frames),
		Temp:      make([]float64, 0, frames),
		MaxHeight: make([]uint16, 0, frames),
	}
}

func (s *FrameHeaderSet) append(h FrameHeader) {
	s.Start = append(s.Start, h.Start)
	s.Info = append(s.Info, h.Info)
	s.ID = append(s.ID, h.ID)
	s.Height = append(s.Height, h.Height)
	s.TvSec = append(s.TvSec, h.TvSec)
	s.TvUsec = append(s.TvUsec, h.TvUsec)
	s.Index = append(s.Index, h.Index)
	s.Temp = append(s.Temp, h.Temp)
	s.MaxHeight = append(s.MaxHeight, h.TrueHeight)
}

// FrameHeaders scans every frame header of the file at path. The file is
// opened once and walked in a single forward pass: each iteration decodes
// one 64-byte header and seeks over the payload without reading it. The
// scan visits exactly the frame count resolved from the file size, so
// trailing bytes past the last whole record are never touched.
func (r *Reader) FrameHeaders(path string) (*FrameHeaderSet, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, utils.WrapError("open "+path, err)
	}
	defer func() { _ = f.Close() }()

	_, shape, err := readShape(f)
	if err != nil {
		return nil, err
	}

	// readShape left the position at the first frame record.
	payload := int64(FrameBytes(shape.Width, shape.Height))
	set := newFrameHeaderSet(shape.Frames)

	buf := utils.GetBuffer(FrameHeaderSize)
	defer utils.ReleaseBuffer(buf)

	for i := 0; i < shape.Frames; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("frame %d header: %w", i, ErrTruncatedFrame)
			}
			return nil, utils.WrapError(fmt.Sprintf("frame %d header", i), err)
		}

		hdr, err := DecodeFrameHeader(buf)
		if err != nil {
			return nil, err
		}
		set.append(hdr)

		if _, err := f.Seek(payload, io.SeekCurrent); err != nil {
			return nil, utils.WrapError(fmt.Sprintf("skip frame %d payload", i), err)
		}
	}

	return set, nil
}
