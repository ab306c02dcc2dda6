// Package geometry provides the small set of geometric primitives shared by
// the localisation, fiducial-detection, and alignment stages.
package geometry

import "math"

// Point2D is a 2D point with floating-point coordinates.
type Point2D struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Rect is an axis-aligned rectangle with floating-point coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Pad returns a copy of the rectangle expanded by pct on each side, where
// pct is a fraction of the rectangle's own width/height (e.g. 0.02 = 2%).
func (r Rect) Pad(pct float64) Rect {
	padX := r.Width * pct
	padY := r.Height * pct
	return Rect{X: r.X - padX, Y: r.Y - padY, Width: r.Width + 2*padX, Height: r.Height + 2*padY}
}

// Clamp returns a copy of the rectangle clipped to [0, maxW) x [0, maxH).
func (r Rect) Clamp(maxW, maxH float64) Rect {
	x1 := math.Max(0, r.X)
	y1 := math.Max(0, r.Y)
	x2 := math.Min(maxW, r.X+r.Width)
	y2 := math.Min(maxH, r.Y+r.Height)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// AffineTransform represents a 2x3 affine transformation matrix:
//
//	[a b tx]
//	[c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// ToMatrix returns the transform as a [2][3]float64 array, the layout gocv's
// warp functions consume.
func (t AffineTransform) ToMatrix() [2][3]float64 {
	return [2][3]float64{
		{t.A, t.B, t.TX},
		{t.C, t.D, t.TY},
	}
}
