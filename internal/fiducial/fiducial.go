// Package fiducial implements the fiducial detector (component G): locates
// marker centres in a rectified pattern image and assigns each to a
// logical corner, first by ring count and falling back to image-corner
// position when a circle's ring count can't be read reliably.
package fiducial

import (
	"image"
	"math"

	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/pkg/geometry"
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"gocv.io/x/gocv"
)

type circle struct {
	center geometry.Point2D
	radius float64
}

// Detect runs the full fiducial-detection pipeline on a rectified image.
func Detect(img raster.Image) (MarkerSet, error) {
	var set MarkerSet
	if img.Empty() {
		return set, nil
	}

	src, err := img.ToMat()
	if err != nil {
		return set, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	w, h := img.Width, img.Height
	scale := float64(maxInt(w, h)) / 512
	expectedR := int(20 * scale)
	minR := maxInt(5, expectedR-int(10*scale))
	maxR := expectedR + int(10*scale)
	ringMaxRadius := maxInt(25, int(25*scale))

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 9, Y: 9}, 2, 2, gocv.BorderDefault)

	var circles []circle
	for _, param2 := range []float64{40, 30, 20} {
		c := houghCircles(blurred, minR, maxR, float64(2*expectedR), 100, param2)
		if len(c) >= 4 {
			circles = c
			break
		}
	}
	if len(circles) < 4 {
		return set, nil
	}

	imagePoint := map[markers.Corner]geometry.Point2D{
		markers.TopLeft:     {X: 0, Y: 0},
		markers.TopRight:    {X: float64(w), Y: 0},
		markers.BottomLeft:  {X: 0, Y: float64(h)},
		markers.BottomRight: {X: float64(w), Y: float64(h)},
	}
	cornerRadius := 0.25 * float64(maxInt(w, h))

	type candidate struct {
		imageCorner markers.Corner
		c           circle
		ring        int
		contrastOK  bool
	}
	var candidates []candidate

	for _, imgCorner := range markers.All {
		target := imagePoint[imgCorner]
		best := -1
		bestDist := math.Inf(1)
		for i, c := range circles {
			d := c.center.Distance(target)
			if d <= cornerRadius && d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best < 0 {
			continue
		}
		rc, ok := ringCount(gray, image.Pt(int(circles[best].center.X), int(circles[best].center.Y)), ringMaxRadius)
		candidates = append(candidates, candidate{imageCorner: imgCorner, c: circles[best], ring: rc, contrastOK: ok})
	}

	// Pass 1: assign by ring count.
	for _, cand := range candidates {
		if !cand.contrastOK {
			continue
		}
		logical, found := markers.CornerForRingCount(cand.ring)
		if !found {
			continue
		}
		set.set(logical, cand.c.center)
	}

	// Pass 2: positional fallback for ambiguous/contrast-rejected circles
	// whose ring-count assignment could not place them, and whose own
	// image-corner slot is still free.
	for _, cand := range candidates {
		_, found := markers.CornerForRingCount(cand.ring)
		resolved := cand.contrastOK && found
		if resolved {
			continue
		}
		set.set(cand.imageCorner, cand.c.center)
	}

	return set, nil
}

func houghCircles(gray gocv.Mat, minR, maxR int, minDist, param1, param2 float64) []circle {
	out := gocv.NewMat()
	defer out.Close()

	gocv.HoughCirclesWithParams(gray, &out, gocv.HoughGradient,
		1.5, minDist, param1, param2, minR, maxR)

	if out.Empty() || out.Cols() == 0 {
		return nil
	}

	circles := make([]circle, out.Cols())
	for i := 0; i < out.Cols(); i++ {
		circles[i] = circle{
			center: geometry.Point2D{
				X: float64(out.GetFloatAt(0, i*3)),
				Y: float64(out.GetFloatAt(0, i*3+1)),
			},
			radius: float64(out.GetFloatAt(0, i*3+2)),
		}
	}
	return circles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
