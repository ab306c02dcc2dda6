// Package align implements capture-to-master alignment (component H's
// geometric half): given the fiducial markers found in a capture, it warps
// the capture into the master's coordinate frame. The method — perspective,
// affine, or resize — is chosen by how many markers were recovered, and the
// point-correspondence solves are adapted from the teacher's
// internal/alignment/transform.go (computeAffineFromPoints, computeRigidFrom2).
package align

import (
	"fmt"
	"math"

	"github.com/development-nine-hawks/cdp/internal/fiducial"
	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/internal/warp"
	"github.com/development-nine-hawks/cdp/pkg/geometry"
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"gonum.org/v1/gonum/mat"
)

// Method names the geometric transform used to align a capture.
type Method string

const (
	MethodPerspective Method = "perspective"
	MethodAffine      Method = "affine"
	MethodResize      Method = "resize"
)

// Align warps capture into a patternSize x patternSize raster in the
// master's coordinate frame, choosing perspective (4 markers), affine/rigid
// (2-3 markers), or a plain resize (0-1 markers).
func Align(capture raster.Image, set fiducial.MarkerSet, patternSize int) (raster.Image, Method, error) {
	found := set.InOrder()

	switch {
	case len(found) >= 4:
		var src, dst [4]geometry.Point2D
		for i, c := range markers.All {
			p := set.Get(c)
			if p == nil {
				out, rerr := warp.Resize(capture, patternSize, patternSize)
				return out, MethodResize, rerr
			}
			src[i] = *p
			dst[i] = destPoint(c, patternSize)
		}
		h, err := warp.SolveHomography(src, dst)
		if err != nil {
			out, rerr := warp.Resize(capture, patternSize, patternSize)
			return out, MethodResize, rerr
		}
		out, err := warp.Perspective(capture, h, patternSize, patternSize)
		return out, MethodPerspective, err

	case len(found) == 3:
		src := make([]geometry.Point2D, 3)
		dst := make([]geometry.Point2D, 3)
		for i, c := range found[:3] {
			src[i] = *set.Get(c)
			dst[i] = destPoint(c, patternSize)
		}
		t, err := affineFromThreePoints(src, dst)
		if err != nil {
			out, rerr := warp.Resize(capture, patternSize, patternSize)
			return out, MethodResize, rerr
		}
		out, err := warp.Affine(capture, t, patternSize, patternSize)
		return out, MethodAffine, err

	case len(found) == 2:
		c0, c1 := found[0], found[1]
		s0, s1 := *set.Get(c0), *set.Get(c1)
		d0, d1 := destPoint(c0, patternSize), destPoint(c1, patternSize)
		t, err := rigidFromTwoPoints(s0, s1, d0, d1)
		if err != nil {
			out, rerr := warp.Resize(capture, patternSize, patternSize)
			return out, MethodResize, rerr
		}
		out, err := warp.Affine(capture, t, patternSize, patternSize)
		return out, MethodAffine, err

	default:
		out, err := warp.Resize(capture, patternSize, patternSize)
		return out, MethodResize, err
	}
}

func destPoint(c markers.Corner, patternSize int) geometry.Point2D {
	p := markers.Centre(c, patternSize)
	return geometry.Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// affineFromThreePoints solves the exact affine transform from 3 point
// correspondences via a 6x6 linear system, mirroring the teacher's
// computeAffineFromPoints.
func affineFromThreePoints(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	if len(src) != 3 || len(dst) != 3 {
		return geometry.AffineTransform{}, fmt.Errorf("align: need exactly 3 points")
	}

	A := mat.NewDense(6, 6, nil)
	B := mat.NewVecDense(6, nil)

	for i := 0; i < 3; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, yp)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return geometry.AffineTransform{}, fmt.Errorf("align: affine solve failed: %w", err)
	}

	return geometry.AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// rigidFromTwoPoints solves a similarity transform (rotation + uniform
// scale + translation) from 2 point correspondences. The scale factor
// matters here: unlike the teacher's computeRigidFrom2 (a RANSAC fallback
// for poorly-constrained point sets, where the caller already expects
// roughly unit scale), this is the sole transform for the exact-2-marker
// case, and a capture's pixel scale is not guaranteed to match the master's.
func rigidFromTwoPoints(s0, s1, d0, d1 geometry.Point2D) (geometry.AffineTransform, error) {
	sx, sy := s1.X-s0.X, s1.Y-s0.Y
	dx, dy := d1.X-d0.X, d1.Y-d0.Y

	srcLen := math.Sqrt(sx*sx + sy*sy)
	dstLen := math.Sqrt(dx*dx + dy*dy)
	if srcLen < 0.001 || dstLen < 0.001 {
		return geometry.AffineTransform{}, fmt.Errorf("align: degenerate marker pair")
	}

	scale := dstLen / srcLen
	theta := math.Atan2(dy, dx) - math.Atan2(sy, sx)
	cosT, sinT := scale*math.Cos(theta), scale*math.Sin(theta)

	tx := d0.X - (cosT*s0.X - sinT*s0.Y)
	ty := d0.Y - (sinT*s0.X + cosT*s0.Y)

	return geometry.AffineTransform{
		A: cosT, B: -sinT, TX: tx,
		C: sinT, D: cosT, TY: ty,
	}, nil
}
