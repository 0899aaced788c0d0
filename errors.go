package pnccd

import "errors"

// Sentinel errors returned by the frms6 and stack reading paths. Call sites
// wrap them with offsets and counts; match with errors.Is.
var (
	// ErrMalformedHeader is returned when a buffer is too short to hold a
	// fixed-layout file or frame header.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrCorruptFile is returned when the file size is not an exact multiple
	// of the per-frame record size, or the file cannot hold its own header.
	ErrCorruptFile = errors.New("corrupt frms6 file")

	// ErrTruncatedFrame is returned when a read pass runs out of bytes
	// inside a frame record.
	ErrTruncatedFrame = errors.New("truncated frame")

	// ErrInvalidRange is returned for empty or out-of-domain caller-supplied
	// frame and pixel ranges.
	ErrInvalidRange = errors.New("invalid range")
)
