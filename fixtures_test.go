package pnccd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// testHeader returns a file header for a width x height fixture.
func testHeader(width, height uint16) FileHeader {
	return FileHeader{
		CCDCount:      1,
		Version:       1,
		DataSetID:     "synthetic run",
		TrueWidth:     width,
		TrueMaxHeight: height,
	}
}

// rampFrames builds n frames whose payloads are deterministic ramps:
// frame i holds sample i*1000 + y*width + x at raw position (y, x). The
// offset per frame keeps frames distinguishable when slicing.
func rampFrames(n int, width, height uint16) []FrameRecord {
	frames := make([]FrameRecord, n)
	for i := range frames {
		pixels := make([]uint16, int(width)*int(height))
		for k := range pixels {
			pixels[k] = uint16(i*1000 + k)
		}
		frames[i] = FrameRecord{
			Header: FrameHeader{
				Start:      uint8(i),
				Info:       0x80,
				ID:         1,
				Height:     uint8(height),
				TvSec:      uint32(1700000000 + i),
				TvUsec:     uint32(i * 250),
				Index:      uint32(i),
				Temp:       -38.5 + float64(i)/10,
				TrueStart:  uint16(i),
				TrueHeight: height,
				ExternalID: uint32(9000 + i),
				BunchID:    0x123456789AB + uint64(i),
			},
			Pixels: pixels,
		}
	}
	return frames
}

// writeFixture encodes a complete frms6 file onto fs and returns its path.
func writeFixture(t *testing.T, fs afero.Fs, name string, hdr FileHeader, frames []FrameRecord) string {
	t.Helper()

	err := NewWriterFS(fs).Write(name, hdr, frames)
	require.NoError(t, err)
	return name
}

// corruptFixture rewrites the fixture at path with its last n bytes cut off.
func corruptFixture(t *testing.T, fs afero.Fs, path string, n int) {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Greater(t, len(data), n)

	err = afero.WriteFile(fs, path, data[:len(data)-n], 0o644)
	require.NoError(t, err)
}
