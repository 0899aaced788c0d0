package pnccd

import "fmt"

// FrameBytes returns the payload size in bytes of one width x height frame
// of 16-bit samples. The geometry is taken at face value; callers that
// accept it from outside the file header own its validation.
func FrameBytes(width, height int) int {
	return width * height * 2
}

// Shape describes the frame geometry and frame count of an frms6 file, in
// the canonical axis order (x, y, frame).
type Shape struct {
	Width  int
	Height int
	Frames int
}

// resolveShape derives the shape from a decoded file header and the total
// file size. The file must consist of exactly the 1024-byte header followed
// by a whole number of frame records; anything else is structural corruption.
func resolveShape(h FileHeader, fileSize int64) (Shape, error) {
	width := int(h.TrueWidth)
	height := int(h.TrueMaxHeight)
	record := int64(FrameHeaderSize) + int64(FrameBytes(width, height))

	payload := fileSize - FileHeaderSize
	if payload < 0 {
		return Shape{}, fmt.Errorf("file of %d bytes cannot hold a %d-byte header: %w",
			fileSize, FileHeaderSize, ErrCorruptFile)
	}
	if payload%record != 0 {
		return Shape{}, fmt.Errorf("%d payload bytes leave %d stray bytes over %d-byte records: %w",
			payload, payload%record, record, ErrCorruptFile)
	}

	return Shape{
		Width:  width,
		Height: height,
		Frames: int(payload / record),
	}, nil
}
