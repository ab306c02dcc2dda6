package fiducial

import (
	"testing"

	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/internal/synth"
	"github.com/development-nine-hawks/cdp/pkg/raster"
)

func TestDetectFindsAllFourMarkersOnFreshPattern(t *testing.T) {
	img, err := synth.Generate(42, 512)
	if err != nil {
		t.Fatalf("synth.Generate: %v", err)
	}

	set, err := Detect(img)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if set.Count() != 4 {
		t.Fatalf("expected 4 markers found, got %d", set.Count())
	}
	for _, c := range markers.All {
		if set.Get(c) == nil {
			t.Errorf("corner %v not assigned", c)
		}
	}
}

func TestDetectOnEmptyImageFindsNothing(t *testing.T) {
	set, err := Detect(raster.Image{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if set.Count() != 0 {
		t.Errorf("expected 0 markers on an empty image, got %d", set.Count())
	}
}
