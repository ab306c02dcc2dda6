package locate

import (
	"testing"

	"github.com/development-nine-hawks/cdp/internal/synth"
	"github.com/development-nine-hawks/cdp/pkg/raster"
)

// embedOnWhite places pattern on a larger plain-white canvas with a margin,
// the shape contourStrategy's dark-square cascade expects.
func embedOnWhite(pattern raster.Image, margin int) raster.Image {
	w, h := pattern.Width+2*margin, pattern.Height+2*margin
	out := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, 255, 255, 255)
		}
	}
	for y := 0; y < pattern.Height; y++ {
		for x := 0; x < pattern.Width; x++ {
			r, g, b := pattern.At(x, y)
			out.Set(x+margin, y+margin, r, g, b)
		}
	}
	return out
}

func TestLocaliseFindsEmbeddedPattern(t *testing.T) {
	pattern, err := synth.Generate(7, 256)
	if err != nil {
		t.Fatalf("synth.Generate: %v", err)
	}
	capture := embedOnWhite(pattern, 40)

	result, err := Localise(capture)
	if err != nil {
		t.Fatalf("Localise: %v", err)
	}
	if !result.Found {
		t.Fatal("expected the embedded pattern to be localised")
	}
	// the rectified pattern should be roughly the original size, not the
	// full padded capture.
	if result.Image.Width > capture.Width-20 {
		t.Errorf("expected a cropped result narrower than the full capture, got width %d (capture %d)",
			result.Image.Width, capture.Width)
	}
}

func TestLocaliseOnPlainImageReturnsNotFound(t *testing.T) {
	blank := raster.New(128, 128)
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			blank.Set(x, y, 255, 255, 255)
		}
	}

	result, err := Localise(blank)
	if err != nil {
		t.Fatalf("Localise: %v", err)
	}
	if result.Found {
		t.Error("expected no pattern found in a plain white image")
	}
	if !result.Image.Equal(blank) {
		t.Error("expected the unmodified capture to be returned when localisation fails")
	}
}
