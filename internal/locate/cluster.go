package locate

import (
	"image"
	"math"

	"github.com/development-nine-hawks/cdp/pkg/geometry"
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"github.com/development-nine-hawks/cdp/internal/warp"
	"gocv.io/x/gocv"
)

type circle struct {
	center geometry.Point2D
	radius float64
}

const maxClusterCircles = 30

// clusterStrategy is the marker-cluster fallback: detect circles, then pick
// the 4 that best form a square and crop their bounding box.
func clusterStrategy(capture raster.Image) (raster.Image, bool, error) {
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
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 9, Y: 9}, 2, 2, gocv.BorderDefault)

	minDim := math.Min(float64(capture.Width), float64(capture.Height))
	minR := int(math.Max(5, math.Floor(20*minDim*0.08/512)))
	maxR := int(math.Floor(20 * minDim * 0.95 / 512))
	if maxR < minR {
		maxR = minR
	}

	var circles []circle
	for _, param2 := range []float64{40, 30, 20} {
		detected := houghCircles(blurred, minR, maxR, float64(2*minR), 100, param2)
		if len(detected) >= 4 {
			circles = detected
			break
		}
	}
	if len(circles) < 4 {
		return raster.Image{}, false, nil
	}
	if len(circles) > maxClusterCircles {
		circles = circles[:maxClusterCircles]
	}

	group, ok := bestSquareGroup(circles)
	if !ok {
		return raster.Image{}, false, nil
	}

	pts := make([]geometry.Point2D, 4)
	for i, c := range group {
		pts[i] = c.center
	}
	bbox := geometry.BoundingBox(pts).Pad(0.10)

	cropped, err := warp.Crop(capture, bbox)
	if err != nil {
		return raster.Image{}, false, err
	}
	return cropped, true, nil
}

// houghCircles runs gocv's Hough circle transform and decodes the resulting
// (x, y, radius) triples, mirroring the teacher's detectHoughCenters.
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

// bestSquareGroup searches all 4-subsets of circles for the one that best
// approximates a square (per spec.md §4.F's side/diagonal ratio rejection
// cascade and variance-based scoring), returning the minimum-score survivor.
func bestSquareGroup(circles []circle) ([4]circle, bool) {
	n := len(circles)
	var best [4]circle
	bestScore := math.Inf(1)
	found := false

	const sqrt2 = math.Sqrt2

	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					group := [4]circle{circles[a], circles[b], circles[c], circles[d]}

					minR, maxR := group[0].radius, group[0].radius
					for _, g := range group[1:] {
						minR = math.Min(minR, g.radius)
						maxR = math.Max(maxR, g.radius)
					}
					if maxR > 2*minR {
						continue
					}

					dists := pairwiseDistances(group)
					sides := dists[:4]
					diags := dists[4:]

					sideMean, sideMin, sideMax := stats(sides)
					diagMean, diagMin, diagMax := stats(diags)

					if sideMean < 10 {
						continue
					}
					if sideMax/sideMin >= 1.3 {
						continue
					}
					if diagMax/diagMin >= 1.3 {
						continue
					}
					diagRatio := diagMean / (sideMean * sqrt2)
					if diagRatio <= 0.75 || diagRatio >= 1.35 {
						continue
					}

					sideVarRatio := variance(sides, sideMean) / (sideMean*sideMean + 1e-10)
					diagVarRatio := variance(diags, diagMean) / (diagMean*diagMean + 1e-10)
					score := sideVarRatio + diagVarRatio + math.Abs(1-diagRatio)

					if score < bestScore {
						bestScore = score
						best = group
						found = true
					}
				}
			}
		}
	}

	return best, found
}

// pairwiseDistances returns the 6 pairwise centre distances of a 4-circle
// group, sorted ascending: the first 4 are the "sides", the last 2 the
// "diagonals" of the best-fit square.
func pairwiseDistances(group [4]circle) [6]float64 {
	var d [6]float64
	idx := 0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			d[idx] = group[i].center.Distance(group[j].center)
			idx++
		}
	}
	// insertion sort, 6 elements
	for i := 1; i < len(d); i++ {
		for j := i; j > 0 && d[j] < d[j-1]; j-- {
			d[j], d[j-1] = d[j-1], d[j]
		}
	}
	return d
}

func stats(v []float64) (mean, min, max float64) {
	min, max = v[0], v[0]
	var sum float64
	for _, x := range v {
		sum += x
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return sum / float64(len(v)), min, max
}

func variance(v []float64, mean float64) float64 {
	var sum float64
	for _, x := range v {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(v))
}
