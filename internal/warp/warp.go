// Package warp provides the raster geometric transforms shared by pattern
// localisation (crop/perspective-rectify a capture down to just the printed
// pattern) and capture-to-master alignment (perspective/affine/resize,
// selected by how many fiducial markers were found). It generalizes the
// teacher repository's gocv-based WarpAffine/RotateImage helpers to the
// perspective case CDP registration needs.
package warp

import (
	"fmt"
	"image"
	"image/color"

	"github.com/development-nine-hawks/cdp/pkg/geometry"
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform in row-major form, with h[2][2]
// normalised to 1.
type Homography [3][3]float64

// SolveHomography computes the projective transform mapping each src[i] to
// dst[i] for exactly 4 point correspondences, by solving the standard
// 8-equation/8-unknown linear system with gonum — the same
// build-a-Dense-system-and-SolveVec idiom the teacher's alignment package
// uses for its exact 3-point affine solve.
func SolveHomography(src, dst [4]geometry.Point2D) (Homography, error) {
	A := mat.NewDense(8, 8, nil)
	B := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -x * xp, -y * xp})
		B.SetVec(2*i, xp)

		A.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -x * yp, -y * yp})
		B.SetVec(2*i+1, yp)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return Homography{}, fmt.Errorf("warp: homography solve failed: %w", err)
	}

	return Homography{
		{params.AtVec(0), params.AtVec(1), params.AtVec(2)},
		{params.AtVec(3), params.AtVec(4), params.AtVec(5)},
		{params.AtVec(6), params.AtVec(7), 1},
	}, nil
}

// Perspective warps img into a new outW x outH raster through h.
func Perspective(img raster.Image, h Homography, outW, outH int) (raster.Image, error) {
	src, err := img.ToMat()
	if err != nil {
		return raster.Image{}, err
	}
	defer src.Close()

	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer m.Close()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.SetDoubleAt(r, c, h[r][c])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpPerspectiveWithParams(src, &dst, m, image.Point{X: outW, Y: outH},
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{})

	return raster.FromMat(dst)
}

// Affine warps img into a new outW x outH raster through t, mirroring the
// teacher's WarpAffine (manual 2x3 Mat construction, WarpAffineWithParams).
func Affine(img raster.Image, t geometry.AffineTransform, outW, outH int) (raster.Image, error) {
	src, err := img.ToMat()
	if err != nil {
		return raster.Image{}, err
	}
	defer src.Close()

	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer m.Close()
	mat := t.ToMatrix()
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			m.SetDoubleAt(r, c, mat[r][c])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpAffineWithParams(src, &dst, m, image.Point{X: outW, Y: outH},
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{})

	return raster.FromMat(dst)
}

// Resize performs an area-preserving resize to outW x outH, the fallback
// alignment method used when fewer than 2 fiducial markers are found.
func Resize(img raster.Image, outW, outH int) (raster.Image, error) {
	src, err := img.ToMat()
	if err != nil {
		return raster.Image{}, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.ResizeWithInterpolation(src, &dst, image.Point{X: outW, Y: outH}, 0, 0, gocv.InterpolationArea)

	return raster.FromMat(dst)
}

// Crop extracts the axis-aligned region r from img, clamped to bounds.
func Crop(img raster.Image, r geometry.Rect) (raster.Image, error) {
	clamped := r.Clamp(float64(img.Width), float64(img.Height))
	x0, y0 := int(clamped.X), int(clamped.Y)
	w, h := int(clamped.Width), int(clamped.Height)
	if w <= 0 || h <= 0 {
		return raster.Image{}, fmt.Errorf("warp: empty crop region")
	}

	out := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := img.At(x0+x, y0+y)
			out.Set(x, y, r, g, b)
		}
	}
	return out, nil
}
