// Package stack reads pnCCD frame stacks stored as datasets inside HDF5
// containers, addressed either as a single file or as a numbered family of
// files forming one logical dataset.
//
// Images come back in the canonical (x, y, frame) axis order shared with
// the frms6 reader, widened to float64 regardless of the on-disk sample
// type. Measured data is stored in canonical order already; simulated data
// is stored image-first and is reordered before any range is applied.
package stack

import (
	"fmt"

	"github.com/scigolib/pnccd"
)

// DefaultDataset is the dataset path frame stacks are conventionally
// written under.
const DefaultDataset = "/stream"

// Slab holds a stack of images in canonical (x, y, frame) order, widened
// to float64. Data is flat with frames varying fastest: sample (x, y, i)
// lives at Data[(x*Y+y)*Frames + i].
type Slab struct {
	X      int
	Y      int
	Frames int
	Data   []float64
}

// At returns the sample at canonical coordinates (x, y, frame).
func (s *Slab) At(x, y, frame int) float64 {
	return s.Data[(x*s.Y+y)*s.Frames+frame]
}

// span is a half-open [start, end) selection on one axis. An unset span
// selects the whole axis.
type span struct {
	start, end int
	set        bool
}

// resolve clamps nothing: an explicit span must lie inside the axis.
func (s span) resolve(length int, axis string) (int, int, error) {
	if !s.set {
		return 0, length, nil
	}
	if s.start < 0 || s.end < 0 || s.start >= s.end || s.end > length {
		return 0, 0, fmt.Errorf("%s range [%d, %d) of %d: %w",
			axis, s.start, s.end, length, pnccd.ErrInvalidRange)
	}
	return s.start, s.end, nil
}

type config struct {
	images    span
	xs        span
	ys        span
	simulated bool
}

// Option configures ReadSlice and Shape.
type Option func(*config)

// WithImageRange restricts the read to frames [start, end).
func WithImageRange(start, end int) Option {
	return func(c *config) { c.images = span{start, end, true} }
}

// WithXRange restricts the read to pixel columns [start, end).
func WithXRange(start, end int) Option {
	return func(c *config) { c.xs = span{start, end, true} }
}

// WithYRange restricts the read to pixel rows [start, end).
func WithYRange(start, end int) Option {
	return func(c *config) { c.ys = span{start, end, true} }
}

// Simulated declares the dataset to be simulation output, which is stored
// (frame, y, x) instead of the measured (x, y, frame) order. For families
// it also moves the concatenation axis to axis 0.
func Simulated() Option {
	return func(c *config) { c.simulated = true }
}

// ReadSlice reads a slab of images from the dataset at path, applying the
// given axis ranges on the canonical axes. The dataset must be rank 3.
// Every underlying container handle is closed before ReadSlice returns.
func ReadSlice(path, dataset string, opts ...Option) (*Slab, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	dims, data, err := newSource(path, cfg.simulated).load(dataset)
	if err != nil {
		return nil, err
	}
	if len(dims) != 3 {
		return nil, fmt.Errorf("dataset %s in %s has rank %d, want a rank-3 image stack: %w",
			dataset, path, len(dims), pnccd.ErrCorruptFile)
	}

	var xdim, ydim, frames int
	if cfg.simulated {
		frames, ydim, xdim = dims[0], dims[1], dims[2]
		data = orientSimulated(data, xdim, ydim, frames)
	} else {
		xdim, ydim, frames = dims[0], dims[1], dims[2]
	}

	x0, x1, err := cfg.xs.resolve(xdim, "x")
	if err != nil {
		return nil, err
	}
	y0, y1, err := cfg.ys.resolve(ydim, "y")
	if err != nil {
		return nil, err
	}
	i0, i1, err := cfg.images.resolve(frames, "image")
	if err != nil {
		return nil, err
	}

	if x0 == 0 && x1 == xdim && y0 == 0 && y1 == ydim && i0 == 0 && i1 == frames {
		return &Slab{X: xdim, Y: ydim, Frames: frames, Data: data}, nil
	}

	slab := &Slab{
		X:      x1 - x0,
		Y:      y1 - y0,
		Frames: i1 - i0,
	}
	slab.Data = make([]float64, slab.X*slab.Y*slab.Frames)

	// In canonical layout the frames of one (x, y) pixel are contiguous,
	// so the carve copies one frame run per pixel.
	pos := 0
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			base := (x*ydim + y) * frames
			pos += copy(slab.Data[pos:], data[base+i0:base+i1])
		}
	}
	return slab, nil
}

// Shape returns the dimensions of the dataset at path as stored, without
// reading sample data. For a family the member shapes are concatenated
// along the frame axis; range options have no effect here.
func Shape(path, dataset string, opts ...Option) ([]int, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return newSource(path, cfg.simulated).shape(dataset)
}

// orientSimulated maps a stack stored (frame, y, x) onto the canonical
// (x, y, frame) layout. Equivalent to rolling the frame axis to the back
// and materializing the result contiguously.
func orientSimulated(src []float64, xdim, ydim, frames int) []float64 {
	dst := make([]float64, len(src))
	for n := 0; n < frames; n++ {
		plane := src[n*ydim*xdim : (n+1)*ydim*xdim]
		for y := 0; y < ydim; y++ {
			row := plane[y*xdim : (y+1)*xdim]
			for x, v := range row {
				dst[(x*ydim+y)*frames+n] = v
			}
		}
	}
	return dst
}
