package fiducial

import (
	"testing"

	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/pkg/geometry"
)

func TestMarkerSetSetRejectsSecondWrite(t *testing.T) {
	var set MarkerSet
	ok1 := set.set(markers.TopLeft, geometry.Point2D{X: 1, Y: 1})
	ok2 := set.set(markers.TopLeft, geometry.Point2D{X: 2, Y: 2})

	if !ok1 {
		t.Fatal("expected first assignment to succeed")
	}
	if ok2 {
		t.Fatal("expected second assignment to the same corner to be rejected")
	}
	p := set.Get(markers.TopLeft)
	if p == nil || p.X != 1 {
		t.Errorf("expected first write to stick, got %+v", p)
	}
}

func TestMarkerSetInOrder(t *testing.T) {
	var set MarkerSet
	set.set(markers.BottomLeft, geometry.Point2D{})
	set.set(markers.TopRight, geometry.Point2D{})

	order := set.InOrder()
	if len(order) != 2 {
		t.Fatalf("expected 2 assigned corners, got %d", len(order))
	}
	if order[0] != markers.TopRight || order[1] != markers.BottomLeft {
		t.Errorf("expected TL,TR,BL,BR order filtered to [TopRight, BottomLeft], got %v", order)
	}
}

func TestMarkerSetCount(t *testing.T) {
	var set MarkerSet
	if set.Count() != 0 {
		t.Fatalf("expected empty set to count 0, got %d", set.Count())
	}
	set.set(markers.TopLeft, geometry.Point2D{})
	set.set(markers.TopRight, geometry.Point2D{})
	if set.Count() != 2 {
		t.Fatalf("expected count 2, got %d", set.Count())
	}
}
