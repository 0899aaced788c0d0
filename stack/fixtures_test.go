package stack

import (
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/require"
)

// stackValue is the deterministic sample at canonical (x, y, frame),
// chosen so every coordinate is recoverable from the value alone.
func stackValue(x, y, frame int) float64 {
	return float64(x*10000 + y*100 + frame)
}

// canonicalRamp lays stackValue out in measured storage order, which is
// already the canonical (x, y, frame) layout.
func canonicalRamp(xdim, ydim, frames int) []float64 {
	data := make([]float64, xdim*ydim*frames)
	for x := 0; x < xdim; x++ {
		for y := 0; y < ydim; y++ {
			for n := 0; n < frames; n++ {
				data[(x*ydim+y)*frames+n] = stackValue(x, y, n)
			}
		}
	}
	return data
}

// simulatedRamp lays stackValue out in simulation storage order, frames
// first with each image row-major (y, x).
func simulatedRamp(xdim, ydim, frames int) []float64 {
	data := make([]float64, xdim*ydim*frames)
	for n := 0; n < frames; n++ {
		for y := 0; y < ydim; y++ {
			for x := 0; x < xdim; x++ {
				data[(n*ydim+y)*xdim+x] = stackValue(x, y, n)
			}
		}
	}
	return data
}

// writeStack writes a float64 dataset with the given storage dims into a
// fresh container at path.
func writeStack(t *testing.T, path, dataset string, dims []uint64, data []float64) {
	t.Helper()

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate,
		hdf5.WithSuperblockVersion(hdf5.SuperblockV0))
	require.NoError(t, err)

	dw, err := fw.CreateDataset(dataset, hdf5.Float64, dims)
	require.NoError(t, err)
	require.NoError(t, dw.Write(data))
	require.NoError(t, fw.Close())
}

// writeUintStack is writeStack for raw uint16 detector counts.
func writeUintStack(t *testing.T, path, dataset string, dims []uint64, data []uint16) {
	t.Helper()

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate,
		hdf5.WithSuperblockVersion(hdf5.SuperblockV0))
	require.NoError(t, err)

	dw, err := fw.CreateDataset(dataset, hdf5.Uint16, dims)
	require.NoError(t, err)
	require.NoError(t, dw.Write(data))
	require.NoError(t, fw.Close())
}
