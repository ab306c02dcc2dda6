package align

import (
	"math"
	"testing"

	"github.com/development-nine-hawks/cdp/internal/fiducial"
	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/pkg/geometry"
	"github.com/development-nine-hawks/cdp/pkg/raster"
)

func TestAffineFromThreePointsRecoversTranslation(t *testing.T) {
	src := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	dst := []geometry.Point2D{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 5, Y: 15}}

	tr, err := affineFromThreePoints(src, dst)
	if err != nil {
		t.Fatalf("affineFromThreePoints: %v", err)
	}

	for i, p := range src {
		got := tr.Apply(p)
		if math.Abs(got.X-dst[i].X) > 1e-6 || math.Abs(got.Y-dst[i].Y) > 1e-6 {
			t.Errorf("point %d: got %+v, want %+v", i, got, dst[i])
		}
	}
}

func TestRigidFromTwoPointsRecoversRotation(t *testing.T) {
	s0 := geometry.Point2D{X: 0, Y: 0}
	s1 := geometry.Point2D{X: 10, Y: 0}
	// 90 degree rotation about the origin: (10,0) -> (0,10)
	d0 := geometry.Point2D{X: 0, Y: 0}
	d1 := geometry.Point2D{X: 0, Y: 10}

	tr, err := rigidFromTwoPoints(s0, s1, d0, d1)
	if err != nil {
		t.Fatalf("rigidFromTwoPoints: %v", err)
	}

	got := tr.Apply(s1)
	if math.Abs(got.X-d1.X) > 1e-6 || math.Abs(got.Y-d1.Y) > 1e-6 {
		t.Errorf("got %+v, want %+v", got, d1)
	}
}

func TestRigidFromTwoPointsRecoversScale(t *testing.T) {
	s0 := geometry.Point2D{X: 0, Y: 0}
	s1 := geometry.Point2D{X: 10, Y: 0}
	// same 90 degree rotation, but the destination pair is twice as far
	// apart: a capture at 2x the master's pixel scale.
	d0 := geometry.Point2D{X: 0, Y: 0}
	d1 := geometry.Point2D{X: 0, Y: 20}

	tr, err := rigidFromTwoPoints(s0, s1, d0, d1)
	if err != nil {
		t.Fatalf("rigidFromTwoPoints: %v", err)
	}

	got := tr.Apply(s1)
	if math.Abs(got.X-d1.X) > 1e-6 || math.Abs(got.Y-d1.Y) > 1e-6 {
		t.Errorf("got %+v, want %+v (scale not recovered)", got, d1)
	}
}

func TestRigidFromTwoPointsRejectsDegenerate(t *testing.T) {
	p := geometry.Point2D{X: 1, Y: 1}
	if _, err := rigidFromTwoPoints(p, p, p, geometry.Point2D{X: 2, Y: 2}); err == nil {
		t.Error("expected error for coincident source points")
	}
}

func TestAlignPicksResizeWithoutMarkers(t *testing.T) {
	img := raster.New(64, 64)
	var set fiducial.MarkerSet

	_, method, err := Align(img, set, 32)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if method != MethodResize {
		t.Errorf("expected resize method with 0 markers, got %v", method)
	}
}

func TestDestPointMatchesMarkersCentre(t *testing.T) {
	for _, c := range markers.All {
		got := destPoint(c, 200)
		want := markers.Centre(c, 200)
		if got.X != float64(want.X) || got.Y != float64(want.Y) {
			t.Errorf("destPoint(%v) = %+v, want %+v", c, got, want)
		}
	}
}
