// Command cdpctl synthesizes and verifies copy-detection patterns against
// files on disk, exercising the cdp package the way viatest/aligntest
// exercise the teacher's detection packages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/development-nine-hawks/cdp"
	"github.com/development-nine-hawks/cdp/internal/codec"
	"github.com/development-nine-hawks/cdp/internal/store"
	"github.com/development-nine-hawks/cdp/pkg/raster"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "synthesize":
		err = runSynthesize(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("cdpctl: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  cdpctl synthesize -out pattern.png [-seed 42] [-size 512] [-db patterns.db]")
	fmt.Fprintln(os.Stderr, "  cdpctl verify -master master.png -capture capture.png")
}

func runSynthesize(args []string) error {
	fs := flag.NewFlagSet("synthesize", flag.ExitOnError)
	out := fs.String("out", "", "output PNG path")
	seedFlag := fs.Int("seed", -1, "seed (omit or -1 for random)")
	size := fs.Int("size", cdp.DefaultPatternSize, "pattern side length in pixels")
	dbPath := fs.String("db", "", "optional SQLite database to record the pattern in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("-out is required")
	}

	var seed *int32
	if *seedFlag >= 0 {
		s := int32(*seedFlag)
		seed = &s
	}

	descriptor, img, err := cdp.Synthesize(seed, *size)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	data, err := (codec.PNG{}).Encode(img)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	fmt.Printf("synthesized seed=%d size=%d -> %s\n", descriptor.Seed, descriptor.PatternSize, *out)
	fmt.Printf("  base_freq=%.3f mod_freq=%.3f mod_depth=%.3f\n",
		descriptor.BaseFreq, descriptor.ModFreq, descriptor.ModDepth)

	if *dbPath != "" {
		if err := recordPattern(*dbPath, descriptor); err != nil {
			return fmt.Errorf("record pattern: %w", err)
		}
		fmt.Printf("  recorded to %s\n", *dbPath)
	}
	return nil
}

func recordPattern(dbPath string, d cdp.Descriptor) error {
	patterns, err := store.OpenSQLitePatternStore(dbPath)
	if err != nil {
		return err
	}
	defer patterns.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := store.PatternRecord{
		ID:            fmt.Sprintf("seed-%d-%d", d.Seed, d.PatternSize),
		Seed:          d.Seed,
		PatternSize:   d.PatternSize,
		BaseFreq:      d.BaseFreq,
		ModFreq:       d.ModFreq,
		ModDepth:      d.ModDepth,
		MarkerCentres: cdp.MarkerCentres(d.PatternSize),
		CreatedAt:     time.Now(),
	}
	return patterns.Put(ctx, rec)
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	masterPath := fs.String("master", "", "master pattern PNG/JPEG/TIFF")
	capturePath := fs.String("capture", "", "captured photograph PNG/JPEG/TIFF")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *masterPath == "" || *capturePath == "" {
		return fmt.Errorf("-master and -capture are required")
	}

	png := codec.PNG{}
	master, err := loadImage(png, *masterPath)
	if err != nil {
		return fmt.Errorf("load master: %w", err)
	}
	capture, err := loadImage(png, *capturePath)
	if err != nil {
		return fmt.Errorf("load capture: %w", err)
	}

	report, err := cdp.Verify(master, capture)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	fmt.Printf("verdict:          %s\n", report.Verdict)
	fmt.Printf("confidence:       %.4f\n", report.Confidence)
	fmt.Printf("  moire:          %.4f (w=%.2f)\n", report.Scores.Moire, report.Weights.Moire)
	fmt.Printf("  color:          %.4f (w=%.2f)\n", report.Scores.Color, report.Weights.Color)
	fmt.Printf("  correlation:    %.4f (w=%.2f)\n", report.Scores.Correlation, report.Weights.Correlation)
	fmt.Printf("  gradient:       %.4f (w=%.2f)\n", report.Scores.Gradient, report.Weights.Gradient)
	fmt.Printf("markers_found:    %d\n", report.MarkersFound)
	fmt.Printf("alignment_method: %s\n", report.AlignmentMethod)
	fmt.Printf("pattern_found:    %v\n", report.PatternFound)
	return nil
}

func loadImage(c codec.Codec, path string) (raster.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return raster.Image{}, err
	}
	return c.Decode(data)
}
