//go:build ignore
// +build ignore

// Generates the sample files under testdata/ used for manual runs of
// pnccdump and the examples. Run from the repository root:
//
//	go run testdata/generators/generate_test_files.go
package main

import (
	"log"

	"github.com/scigolib/hdf5"

	"github.com/scigolib/pnccd"
	"github.com/scigolib/pnccd/stack"
)

func main() {
	writeFrms6("testdata/sample.frms6")
	writeStackMember("testdata/stack_00000.h5", 2, 0)
	writeStackMember("testdata/stack_00001.h5", 2, 2)
}

func writeFrms6(path string) {
	const width, height, count = 8, 6, 4

	hdr := pnccd.FileHeader{
		CCDCount:      1,
		Version:       6,
		DataSetID:     "synthetic sample",
		TrueWidth:     width,
		TrueMaxHeight: height,
	}

	frames := make([]pnccd.FrameRecord, count)
	for i := range frames {
		pixels := make([]uint16, width*height)
		for j := range pixels {
			pixels[j] = uint16(i*1000 + j)
		}
		frames[i] = pnccd.FrameRecord{
			Header: pnccd.FrameHeader{
				ID:         1,
				Height:     height,
				TvSec:      1700000000 + uint32(i),
				TvUsec:     uint32(i * 250),
				Index:      uint32(i),
				Temp:       -38.5 + float64(i)/10,
				TrueHeight: height,
			},
			Pixels: pixels,
		}
	}

	if err := pnccd.NewWriter().Write(path, hdr, frames); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	log.Printf("wrote %s", path)
}

func writeStackMember(path string, count, firstFrame int) {
	const xdim, ydim = 8, 6

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate,
		hdf5.WithSuperblockVersion(hdf5.SuperblockV0))
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}

	dw, err := fw.CreateDataset(stack.DefaultDataset, hdf5.Float64,
		[]uint64{xdim, ydim, uint64(count)})
	if err != nil {
		log.Fatalf("create dataset in %s: %v", path, err)
	}

	data := make([]float64, xdim*ydim*count)
	for x := 0; x < xdim; x++ {
		for y := 0; y < ydim; y++ {
			for n := 0; n < count; n++ {
				data[(x*ydim+y)*count+n] = float64(x*10000 + y*100 + firstFrame + n)
			}
		}
	}
	if err := dw.Write(data); err != nil {
		log.Fatalf("write dataset in %s: %v", path, err)
	}
	if err := fw.Close(); err != nil {
		log.Fatalf("close %s: %v", path, err)
	}
	log.Printf("wrote %s", path)
}
