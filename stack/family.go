package stack

import (
	"fmt"
	"os"
	"strings"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/scigolib/pnccd"
	"github.com/scigolib/pnccd/internal/utils"
)

// familyToken marks a path as the first member of a numbered file family.
// Every occurrence in the path becomes the zero-padded member index.
const familyToken = "00000"

// datasetSource hides single containers and numbered families behind one
// logical dataset. Both methods work in storage order; the caller owns
// any axis reordering.
type datasetSource interface {
	shape(dataset string) ([]int, error)
	load(dataset string) ([]int, []float64, error)
}

func newSource(path string, simulated bool) datasetSource {
	if n := strings.Count(path, familyToken); n > 0 {
		return &familySource{
			pattern:   strings.ReplaceAll(path, familyToken, "%05d"),
			slots:     n,
			simulated: simulated,
		}
	}
	return &singleSource{path: path}
}

// singleSource reads one container file.
type singleSource struct {
	path string
}

func (s *singleSource) shape(dataset string) ([]int, error) {
	f, err := hdf5.Open(s.path)
	if err != nil {
		return nil, utils.WrapError("open "+s.path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := f.OpenDataset(dataset)
	if err != nil {
		return nil, utils.WrapError(fmt.Sprintf("open dataset %s in %s", dataset, s.path), err)
	}
	return intDims(ds.Shape()), nil
}

func (s *singleSource) load(dataset string) ([]int, []float64, error) {
	f, err := hdf5.Open(s.path)
	if err != nil {
		return nil, nil, utils.WrapError("open "+s.path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := f.OpenDataset(dataset)
	if err != nil {
		return nil, nil, utils.WrapError(fmt.Sprintf("open dataset %s in %s", dataset, s.path), err)
	}

	data, err := ds.ReadFloat64()
	if err != nil {
		return nil, nil, utils.WrapError(fmt.Sprintf("read dataset %s in %s", dataset, s.path), err)
	}
	return intDims(ds.Shape()), data, nil
}

// familySource reads a numbered family of containers as one logical
// dataset. Members are independent valid containers holding slabs of
// frames; their shapes must agree on every axis except the frame axis,
// along which they concatenate in member order.
type familySource struct {
	pattern   string
	slots     int
	simulated bool
}

// member renders the path of member i, filling every numbered slot.
func (s *familySource) member(i int) string {
	args := make([]interface{}, s.slots)
	for k := range args {
		args[k] = i
	}
	return fmt.Sprintf(s.pattern, args...)
}

// mergeAxis is the frame axis in storage order: simulated stacks carry
// frames first, measured stacks last.
func (s *familySource) mergeAxis(rank int) int {
	if s.simulated {
		return 0
	}
	return rank - 1
}

// members enumerates the family's file paths. Member 0 is always included
// so a missing first member surfaces as its open error; enumeration stops
// at the first missing higher index.
func (s *familySource) members() ([]string, error) {
	paths := []string{s.member(0)}
	for i := 1; ; i++ {
		p := s.member(i)
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				break
			}
			return nil, utils.WrapError("probe family member "+p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *familySource) shape(dataset string) ([]int, error) {
	paths, err := s.members()
	if err != nil {
		return nil, err
	}

	var dims []int
	for i, p := range paths {
		md, err := (&singleSource{path: p}).shape(dataset)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			if len(md) == 0 {
				return nil, fmt.Errorf("family member %s: scalar dataset %s cannot form a family: %w",
					p, dataset, pnccd.ErrCorruptFile)
			}
			dims = md
			continue
		}
		if err := s.matchGeometry(dims, md, p); err != nil {
			return nil, err
		}
		axis := s.mergeAxis(len(dims))
		dims[axis] += md[axis]
	}
	return dims, nil
}

func (s *familySource) load(dataset string) ([]int, []float64, error) {
	paths, err := s.members()
	if err != nil {
		return nil, nil, err
	}

	var (
		dims   []int
		parts  [][]float64
		counts []int
	)
	for i, p := range paths {
		md, data, err := (&singleSource{path: p}).load(dataset)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			if len(md) == 0 {
				return nil, nil, fmt.Errorf("family member %s: scalar dataset %s cannot form a family: %w",
					p, dataset, pnccd.ErrCorruptFile)
			}
			dims = md
		} else {
			if err := s.matchGeometry(dims, md, p); err != nil {
				return nil, nil, err
			}
		}
		axis := s.mergeAxis(len(md))
		parts = append(parts, data)
		counts = append(counts, md[axis])
	}

	axis := s.mergeAxis(len(dims))
	total := 0
	for _, n := range counts {
		total += n
	}
	dims[axis] = total

	if axis == 0 {
		// Frames-first storage keeps each member contiguous, so the
		// logical dataset is a plain concatenation.
		merged := make([]float64, 0, volume(dims))
		for _, part := range parts {
			merged = append(merged, part...)
		}
		return dims, merged, nil
	}

	// Frames-last storage interleaves: every leading-index row gains the
	// members' frame runs side by side.
	rows := volume(dims[:axis])
	merged := make([]float64, rows*total)
	base := 0
	for m, part := range parts {
		n := counts[m]
		for r := 0; r < rows; r++ {
			copy(merged[r*total+base:], part[r*n:(r+1)*n])
		}
		base += n
	}
	return dims, merged, nil
}

// matchGeometry verifies a member's dims agree with the family's on every
// axis except the frame axis.
func (s *familySource) matchGeometry(want, got []int, path string) error {
	ok := len(want) == len(got)
	if ok {
		axis := s.mergeAxis(len(want))
		for i := range want {
			if i != axis && want[i] != got[i] {
				ok = false
				break
			}
		}
	}
	if !ok {
		return fmt.Errorf("family member %s has shape %v, want %v outside the frame axis: %w",
			path, got, want, pnccd.ErrCorruptFile)
	}
	return nil
}

func intDims(dims []uint64) []int {
	if dims == nil {
		return nil
	}
	out := make([]int, len(dims))
	for i, d := range dims {
		out[i] = int(d)
	}
	return out
}

func volume(dims []int) int {
	v := 1
	for _, d := range dims {
		v *= d
	}
	return v
}
