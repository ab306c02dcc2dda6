package geometry

import (
	"math"
	"testing"
)

func TestPoint2DDistance(t *testing.T) {
	a := Point2D{X: 0, Y: 0}
	b := Point2D{X: 3, Y: 4}
	if d := a.Distance(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %v", d)
	}
}

func TestRectPad(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	padded := r.Pad(0.1)

	if padded.X != 0 || padded.Y != 5 {
		t.Errorf("unexpected padded origin: %+v", padded)
	}
	if padded.Width != 120 || padded.Height != 60 {
		t.Errorf("unexpected padded size: %+v", padded)
	}
}

func TestRectClamp(t *testing.T) {
	r := Rect{X: -10, Y: -10, Width: 50, Height: 50}
	clamped := r.Clamp(30, 30)

	if clamped.X != 0 || clamped.Y != 0 {
		t.Errorf("expected clamp to start at origin, got %+v", clamped)
	}
	if clamped.Width != 30 || clamped.Height != 30 {
		t.Errorf("expected clamp to bound size to 30x30, got %+v", clamped)
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []Point2D{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}}
	box := BoundingBox(pts)

	if box.X != -2 || box.Y != -1 {
		t.Errorf("unexpected bbox origin: %+v", box)
	}
	if box.Width != 6 || box.Height != 6 {
		t.Errorf("unexpected bbox size: %+v", box)
	}
}

func TestAffineTransformApplyIdentity(t *testing.T) {
	identity := AffineTransform{A: 1, D: 1}
	p := Point2D{X: 12, Y: -7}
	out := identity.Apply(p)
	if out != p {
		t.Errorf("identity transform changed point: %+v -> %+v", p, out)
	}
}

func TestAffineTransformApplyTranslation(t *testing.T) {
	translate := AffineTransform{A: 1, D: 1, TX: 5, TY: -3}
	out := translate.Apply(Point2D{X: 1, Y: 1})
	want := Point2D{X: 6, Y: -2}
	if out != want {
		t.Errorf("expected %+v, got %+v", want, out)
	}
}
