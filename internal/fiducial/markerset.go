package fiducial

import (
	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/pkg/geometry"
)

// MarkerSet maps each logical corner to its detected centre, or nil if that
// corner's marker was not found. At most one marker is ever assigned per
// logical corner.
type MarkerSet struct {
	slots [4]*geometry.Point2D
}

// Get returns the detected centre for a logical corner, or nil.
func (m MarkerSet) Get(c markers.Corner) *geometry.Point2D {
	return m.slots[c]
}

// set assigns p to corner c if that slot is still free, returning whether
// the assignment happened.
func (m *MarkerSet) set(c markers.Corner, p geometry.Point2D) bool {
	if m.slots[c] != nil {
		return false
	}
	v := p
	m.slots[c] = &v
	return true
}

// Count returns the number of logical corners with an assigned marker.
func (m MarkerSet) Count() int {
	n := 0
	for _, s := range m.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// InOrder returns the assigned markers in TL, TR, BL, BR order, skipping
// any corner with no assignment. This is the fixed order the affine
// alignment fallback uses when 2 or 3 markers are available.
func (m MarkerSet) InOrder() []markers.Corner {
	var out []markers.Corner
	for _, c := range markers.All {
		if m.slots[c] != nil {
			out = append(out, c)
		}
	}
	return out
}
