package locate

import (
	"image"
	"math"

	"github.com/development-nine-hawks/cdp/pkg/geometry"
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"github.com/development-nine-hawks/cdp/internal/warp"
	"gocv.io/x/gocv"
)

const minAreaPct = 0.03

// contourStrategy implements the first localisation cascade: threshold,
// close, find the darkest plausibly-square external contour, then rectify
// it. ok is false if no contour survives the rejection cascade.
func contourStrategy(capture raster.Image) (raster.Image, bool, error) {
	src, err := capture.ToMat()
	if err != nil {
		return raster.Image{}, false, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(blurred, &thresh, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 15, Y: 15})
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(thresh, &closed, gocv.MorphClose, kernel)

	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return raster.Image{}, false, nil
	}

	imgW, imgH := capture.Width, capture.Height
	imgArea := float64(imgW * imgH)

	imgMean := meanOf(gray)

	bestIdx := -1
	bestScore := math.Inf(-1)

	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if area < minAreaPct*imgArea {
			continue
		}

		bbox := gocv.BoundingRect(c)
		w, h := float64(bbox.Dx()), float64(bbox.Dy())
		if h == 0 {
			continue
		}
		aspect := w / h
		if aspect <= 0.7 || aspect >= 1.4 {
			continue
		}
		if w > 0.9*float64(imgW) || h > 0.9*float64(imgH) {
			continue
		}

		region := gray.Region(bbox)
		regionMean, regionStd := meanStd(region)
		region.Close()

		if regionMean > 0.95*imgMean {
			continue
		}

		darkness := math.Max(0, imgMean-regionMean)
		score := darkness + regionStd
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return raster.Image{}, false, nil
	}

	best := contours.At(bestIdx)
	rot := gocv.MinAreaRect(best)

	rectW, rectH, angle := float64(rot.Width), float64(rot.Height), float64(rot.Angle)
	if rectW < rectH {
		rectW, rectH = rectH, rectW
		angle += 90
	}

	effAngle := math.Mod(math.Abs(angle), 90)
	if effAngle > 45 {
		effAngle = 90 - effAngle
	}

	if effAngle < 5 {
		bbox := gocv.BoundingRect(best)
		padded := geometry.Rect{
			X: float64(bbox.Min.X), Y: float64(bbox.Min.Y),
			Width: float64(bbox.Dx()), Height: float64(bbox.Dy()),
		}.Pad(0.02)
		cropped, err := warp.Crop(capture, padded)
		if err != nil {
			return raster.Image{}, false, err
		}
		return cropped, true, nil
	}

	pts := rotatedRectPoints(rot)
	ordered := orderQuad(pts)

	side := math.Max(rectW, rectH)
	pad := 0.02 * side
	outSize := int(math.Round(side))

	dest := [4]geometry.Point2D{
		{X: pad, Y: pad},
		{X: side - pad, Y: pad},
		{X: side - pad, Y: side - pad},
		{X: pad, Y: side - pad},
	}

	h, err := warp.SolveHomography(ordered, dest)
	if err != nil {
		return raster.Image{}, false, err
	}
	rectified, err := warp.Perspective(capture, h, outSize, outSize)
	if err != nil {
		return raster.Image{}, false, err
	}
	return rectified, true, nil
}

// rotatedRectPoints extracts the 4 corner points of a gocv RotatedRect.
func rotatedRectPoints(rot gocv.RotatedRect) [4]geometry.Point2D {
	var out [4]geometry.Point2D
	for i, p := range rot.Points {
		if i >= 4 {
			break
		}
		out[i] = geometry.Point2D{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

// orderQuad orders 4 arbitrary points as (TL, TR, BR, BL) by sorting by y
// then by x within the top/bottom halves.
func orderQuad(pts [4]geometry.Point2D) [4]geometry.Point2D {
	sorted := pts[:]
	// simple insertion sort by Y, stable for small N
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Y < sorted[j-1].Y; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	top := []geometry.Point2D{sorted[0], sorted[1]}
	bottom := []geometry.Point2D{sorted[2], sorted[3]}
	if top[1].X < top[0].X {
		top[0], top[1] = top[1], top[0]
	}
	if bottom[1].X < bottom[0].X {
		bottom[0], bottom[1] = bottom[1], bottom[0]
	}

	return [4]geometry.Point2D{top[0], top[1], bottom[1], bottom[0]}
}

func meanOf(m gocv.Mat) float64 {
	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(m, &mean, &stddev)
	return mean.GetDoubleAt(0, 0)
}

func meanStd(m gocv.Mat) (mean, std float64) {
	meanMat := gocv.NewMat()
	defer meanMat.Close()
	stdMat := gocv.NewMat()
	defer stdMat.Close()
	gocv.MeanStdDev(m, &meanMat, &stdMat)
	return meanMat.GetDoubleAt(0, 0), stdMat.GetDoubleAt(0, 0)
}
