package pnccd

import (
	"bytes"
	"fmt"
	"math"

	"github.com/scigolib/pnccd/internal/utils"
)

// Fixed record sizes of the frms6 container format. Every offset computation
// in this package derives from these two constants and the frame geometry.
const (
	// FileHeaderSize is the size of the leading file header in bytes.
	FileHeaderSize = 1024

	// FrameHeaderSize is the size of each per-frame header in bytes.
	FrameHeaderSize = 64

	// dataSetIDSize is the fixed width of the null-padded identifier field.
	dataSetIDSize = 80
)

// FileHeader is the decoded form of the 1024-byte record that opens every
// frms6 file. TrueWidth and TrueMaxHeight carry the actual frame geometry;
// Width and MaxHeight are legacy single-byte fields kept for compatibility.
type FileHeader struct {
	HeaderSize      uint16
	FrameHeaderSize uint16
	CCDCount        uint8
	Width           uint8
	MaxHeight       uint8
	Version         uint8
	DataSetID       string
	TrueWidth       uint16
	TrueMaxHeight   uint16
}

// FrameHeader is the decoded form of the 64-byte record that precedes each
// frame's pixel payload.
type FrameHeader struct {
	Start      uint8
	Info       uint8
	ID         uint8
	Height     uint8
	TvSec      uint32
	TvUsec     uint32
	Index      uint32
	Temp       float64
	TrueStart  uint16
	TrueHeight uint16
	ExternalID uint32
	BunchID    uint64
}

// DecodeFileHeader parses the fixed 1024-byte file header layout. All
// multi-byte fields are read in the host's native byte order; frms6 files
// carry no endianness tag.
func DecodeFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) < FileHeaderSize {
		return FileHeader{}, fmt.Errorf("file header: have %d bytes, need %d: %w",
			len(buf), FileHeaderSize, ErrMalformedHeader)
	}

	ord := utils.NativeOrder
	return FileHeader{
		HeaderSize:      ord.Uint16(buf[0:2]),  // bytes 0-1: file header size
		FrameHeaderSize: ord.Uint16(buf[2:4]),  // bytes 2-3: frame header size
		CCDCount:        buf[4],                // byte 4: number of CCDs
		Width:           buf[5],                // byte 5: nominal width
		MaxHeight:       buf[6],                // byte 6: nominal max height
		Version:         buf[7],                // byte 7: format version
		DataSetID:       decodeDataSetID(buf[8 : 8+dataSetIDSize]),
		TrueWidth:       ord.Uint16(buf[88:90]), // bytes 88-89: actual width
		TrueMaxHeight:   ord.Uint16(buf[90:92]), // bytes 90-91: actual max height
		// bytes 92-1023 reserved
	}, nil
}

// DecodeFrameHeader parses the fixed 64-byte frame header layout.
func DecodeFrameHeader(buf []byte) (FrameHeader, error) {
	if len(buf) < FrameHeaderSize {
		return FrameHeader{}, fmt.Errorf("frame header: have %d bytes, need %d: %w",
			len(buf), FrameHeaderSize, ErrMalformedHeader)
	}

	ord := utils.NativeOrder
	return FrameHeader{
		Start:      buf[0],                                    // byte 0: start line
		Info:       buf[1],                                    // byte 1: info bits
		ID:         buf[2],                                    // byte 2: CCD id
		Height:     buf[3],                                    // byte 3: height in lines
		TvSec:      ord.Uint32(buf[4:8]),                      // bytes 4-7: acquisition seconds
		TvUsec:     ord.Uint32(buf[8:12]),                     // bytes 8-11: acquisition microseconds
		Index:      ord.Uint32(buf[12:16]),                    // bytes 12-15: frame index
		Temp:       math.Float64frombits(ord.Uint64(buf[16:24])), // bytes 16-23: temperature
		TrueStart:  ord.Uint16(buf[24:26]),                    // bytes 24-25: actual start line
		TrueHeight: ord.Uint16(buf[26:28]),                    // bytes 26-27: actual height
		ExternalID: ord.Uint32(buf[28:32]),                    // bytes 28-31: external trigger id
		BunchID:    ord.Uint64(buf[32:40]),                    // bytes 32-39: bunch id
		// bytes 40-63 reserved
	}, nil
}

// EncodeFileHeader renders h into its 1024-byte on-disk form. Zero
// HeaderSize and FrameHeaderSize fields are filled with the format
// constants so a zero-value header encodes a well-formed file.
func EncodeFileHeader(h FileHeader) ([]byte, error) {
	if len(h.DataSetID) > dataSetIDSize {
		return nil, fmt.Errorf("dataset id %q is %d bytes, limit %d",
			h.DataSetID, len(h.DataSetID), dataSetIDSize)
	}

	if h.HeaderSize == 0 {
		h.HeaderSize = FileHeaderSize
	}
	if h.FrameHeaderSize == 0 {
		h.FrameHeaderSize = FrameHeaderSize
	}

	ord := utils.NativeOrder
	buf := make([]byte, FileHeaderSize)
	ord.PutUint16(buf[0:2], h.HeaderSize)
	ord.PutUint16(buf[2:4], h.FrameHeaderSize)
	buf[4] = h.CCDCount
	buf[5] = h.Width
	buf[6] = h.MaxHeight
	buf[7] = h.Version
	copy(buf[8:8+dataSetIDSize], h.DataSetID)
	ord.PutUint16(buf[88:90], h.TrueWidth)
	ord.PutUint16(buf[90:92], h.TrueMaxHeight)
	return buf, nil
}

// EncodeFrameHeader renders h into its 64-byte on-disk form.
func EncodeFrameHeader(h FrameHeader) []byte {
	ord := utils.NativeOrder
	buf := make([]byte, FrameHeaderSize)
	buf[0] = h.Start
	buf[1] = h.Info
	buf[2] = h.ID
	buf[3] = h.Height
	ord.PutUint32(buf[4:8], h.TvSec)
	ord.PutUint32(buf[8:12], h.TvUsec)
	ord.PutUint32(buf[12:16], h.Index)
	ord.PutUint64(buf[16:24], math.Float64bits(h.Temp))
	ord.PutUint16(buf[24:26], h.TrueStart)
	ord.PutUint16(buf[26:28], h.TrueHeight)
	ord.PutUint32(buf[28:32], h.ExternalID)
	ord.PutUint64(buf[32:40], h.BunchID)
	return buf
}

// decodeDataSetID trims the trailing null padding of the identifier field.
func decodeDataSetID(raw []byte) string {
	return string(bytes.TrimRight(raw, "\x00"))
}
