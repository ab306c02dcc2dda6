// Package markers defines the fiducial-marker vocabulary shared by the
// stamper (component E, which draws markers) and the detector (component G,
// which finds them): corner identity, the ring-count-to-corner mapping, and
// the marker geometry constants both sides must agree on.
package markers

import "image"

// Size is the side length of a fiducial marker's bounding box; a marker is
// centred Offset pixels in from each edge of the pattern.
const Size = 48

// Offset is the corner inset, in pixels, at which every fiducial marker is
// centred at the pattern's native size: (Offset, Offset), (W-Offset,
// Offset), and so on. It is also the aligner's fixed destination offset for
// the 4-marker perspective case (spec: off=24), independent of image scale.
const Offset = Size / 2

// DiskRadius is the radius of the white disk each marker is stamped on.
const DiskRadius = Offset - 1

// RingThickness is the stroke width of a stamped ring.
const RingThickness = 3

// Corner identifies one of the four logical pattern corners.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	default:
		return "unknown"
	}
}

// All lists the four corners in stamping/iteration order: TL, TR, BL, BR.
// This is also the fixed order the affine fallback uses when picking the
// first three available markers (spec §9 open-question resolution).
var All = []Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// RingRadii lists, for each logical corner, the radii of the black rings
// stamped inside its white disk. BottomRight has no entry: it stamps a
// single filled disk instead, which the detector reports as ring count 0.
var RingRadii = map[Corner][]int{
	TopLeft:     {20},
	TopRight:    {20, 10},
	BottomLeft:  {20, 13, 6},
	BottomRight: nil,
}

// RingCountFor returns the ring count that identifies a logical corner:
// 1->TL, 2->TR, 3->BL, 0->BR. This mapping must match between stamper and
// detector.
func RingCountFor(c Corner) int {
	switch c {
	case TopLeft:
		return 1
	case TopRight:
		return 2
	case BottomLeft:
		return 3
	default:
		return 0
	}
}

// CornerForRingCount is the inverse of RingCountFor. ok is false for ring
// counts that identify no corner.
func CornerForRingCount(ringCount int) (Corner, bool) {
	switch ringCount {
	case 1:
		return TopLeft, true
	case 2:
		return TopRight, true
	case 3:
		return BottomLeft, true
	case 0:
		return BottomRight, true
	default:
		return 0, false
	}
}

// Centre returns the pixel centre of a logical corner's marker in a
// pattern of the given native size.
func Centre(c Corner, size int) image.Point {
	switch c {
	case TopLeft:
		return image.Pt(Offset, Offset)
	case TopRight:
		return image.Pt(size-Offset, Offset)
	case BottomLeft:
		return image.Pt(Offset, size-Offset)
	default:
		return image.Pt(size-Offset, size-Offset)
	}
}
