// Package main provides a command-line utility to inspect pnCCD frms6
// files. It dumps file and frame metadata and can compute per-frame pixel
// statistics or render a single frame as a PNG heatmap.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/scigolib/pnccd"
)

func main() {
	// Define command-line flags
	headers := flag.Bool("headers", false, "Print the per-frame metadata table")
	frames := flag.String("frames", "", "Frame range a:b to read for -stats (default all frames)")
	stats := flag.Bool("stats", false, "Print per-frame min/max/mean/stddev")
	heatmap := flag.String("heatmap", "", "Render one frame as a PNG heatmap to this file")
	frame := flag.Int("frame", 0, "Frame index for -heatmap")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: pnccdump [flags] <file.frms6>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}
	path := args[0]

	hdr, err := pnccd.ReadFileHeader(path)
	if err != nil {
		log.Fatalf("Failed to read file header: %v", err)
	}
	shape, err := pnccd.ResolveShape(path)
	if err != nil {
		log.Fatalf("Failed to resolve shape: %v", err)
	}
	printFileHeader(path, hdr, shape)

	if *headers {
		set, err := pnccd.ReadFrameHeaders(path)
		if err != nil {
			log.Fatalf("Failed to scan frame headers: %v", err)
		}
		printFrameHeaders(set)
	}

	if *stats {
		rng, err := parseRange(*frames, shape.Frames)
		if err != nil {
			log.Fatalf("Invalid -frames range: %v", err)
		}
		stack, err := pnccd.ReadFrames(path, rng, shape.Width, shape.Height)
		if err != nil {
			log.Fatalf("Failed to read frames: %v", err)
		}
		printStats(stack, rng.Start)
	}

	if *heatmap != "" {
		rng := pnccd.Range{Start: *frame, End: *frame + 1}
		stack, err := pnccd.ReadFrames(path, rng, shape.Width, shape.Height)
		if err != nil {
			log.Fatalf("Failed to read frame %d: %v", *frame, err)
		}
		if err := saveHeatmap(stack, *frame, *heatmap); err != nil {
			log.Fatalf("Failed to render heatmap: %v", err)
		}
		fmt.Printf("Wrote frame %d heatmap to %s\n", *frame, *heatmap)
	}
}

func printFileHeader(path string, hdr pnccd.FileHeader, shape pnccd.Shape) {
	fmt.Printf("%s: %d frame(s) of %d x %d\n", path, shape.Frames, shape.Width, shape.Height)
	fmt.Printf("  header size        %d\n", hdr.HeaderSize)
	fmt.Printf("  frame header size  %d\n", hdr.FrameHeaderSize)
	fmt.Printf("  ccd count          %d\n", hdr.CCDCount)
	fmt.Printf("  version            %d\n", hdr.Version)
	fmt.Printf("  nominal geometry   %d x %d\n", hdr.Width, hdr.MaxHeight)
	fmt.Printf("  true geometry      %d x %d\n", hdr.TrueWidth, hdr.TrueMaxHeight)
	if hdr.DataSetID != "" {
		fmt.Printf("  data set id        %q\n", hdr.DataSetID)
	}
}

func printFrameHeaders(set *pnccd.FrameHeaderSet) {
	fmt.Println("frame  ccd  start  height  max  timestamp           temp  info")
	for i := 0; i < set.Len(); i++ {
		fmt.Printf("%5d  %3d  %5d  %6d  %3d  %10d.%06d  %7.2f  0x%02x\n",
			set.Index[i], set.ID[i], set.Start[i], set.Height[i], set.MaxHeight[i],
			set.TvSec[i], set.TvUsec[i], set.Temp[i], set.Info[i])
	}
}

// parseRange turns "a:b" into a half-open frame range, defaulting to the
// whole file when the flag is unset.
func parseRange(s string, frames int) (pnccd.Range, error) {
	if s == "" {
		return pnccd.Range{Start: 0, End: frames}, nil
	}
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return pnccd.Range{}, fmt.Errorf("want a:b, got %q", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return pnccd.Range{}, err
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return pnccd.Range{}, err
	}
	return pnccd.Range{Start: start, End: end}, nil
}

func printStats(stack *pnccd.FrameStack, first int) {
	if stack.Width*stack.Height == 0 {
		log.Fatalf("Cannot compute statistics for %d x %d frames", stack.Width, stack.Height)
	}

	fmt.Println("frame     min     max       mean     stddev")
	xs := make([]float64, stack.Width*stack.Height)
	for i := 0; i < stack.Frames; i++ {
		for j, v := range stack.Frame(i) {
			xs[j] = float64(v)
		}
		mean, std := stat.MeanStdDev(xs, nil)
		fmt.Printf("%5d  %6.0f  %6.0f  %9.2f  %9.2f\n",
			first+i, floats.Min(xs), floats.Max(xs), mean, std)
	}
}

// frameGrid adapts one frame to the plotter grid interface, mapping
// canonical (x, y) pixel coordinates onto plot columns and rows.
type frameGrid struct {
	frame  []uint16
	width  int
	height int
}

func (g frameGrid) Dims() (int, int)   { return g.width, g.height }
func (g frameGrid) Z(c, r int) float64 { return float64(g.frame[c*g.height+r]) }
func (g frameGrid) X(c int) float64    { return float64(c) }
func (g frameGrid) Y(r int) float64    { return float64(r) }

func saveHeatmap(stack *pnccd.FrameStack, index int, out string) error {
	grid := frameGrid{frame: stack.Frame(0), width: stack.Width, height: stack.Height}
	hm := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(255))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("frame %d", index)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	return p.Save(6*vg.Inch, 6*vg.Inch, out)
}
