package pnccd

import "fmt"

// FrameStack holds decoded pixel data for a contiguous run of frames in the
// canonical (x, y, frame) axis order. Data is one flat slice, frame-major
// then column-major: sample (x, y, i) lives at Data[i*Width*Height + x*Height + y].
type FrameStack struct {
	Width  int
	Height int
	Frames int
	Data   []uint16
}

// At returns the sample at canonical coordinates (x, y, frame). Coordinates
// are not bounds-checked beyond what the slice itself enforces.
func (s *FrameStack) At(x, y, frame int) uint16 {
	return s.Data[frame*s.Width*s.Height+x*s.Height+y]
}

// Frame returns the contiguous samples of one frame, x-major: the samples of
// column x occupy frame[x*Height : (x+1)*Height] in ascending y.
func (s *FrameStack) Frame(i int) []uint16 {
	area := s.Width * s.Height
	return s.Data[i*area : (i+1)*area]
}

// Slice returns the sub-stack covering frames [start, end) as a view over
// the same backing data; no samples are copied.
func (s *FrameStack) Slice(start, end int) (*FrameStack, error) {
	if start < 0 || end < 0 || start >= end || end > s.Frames {
		return nil, fmt.Errorf("frame slice [%d, %d) of %d frames: %w",
			start, end, s.Frames, ErrInvalidRange)
	}

	area := s.Width * s.Height
	return &FrameStack{
		Width:  s.Width,
		Height: s.Height,
		Frames: end - start,
		Data:   s.Data[start*area : end*area],
	}, nil
}
