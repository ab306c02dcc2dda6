package metrics

import "github.com/development-nine-hawks/cdp/pkg/raster"

// Color scores inter-channel balance and per-pixel closeness between
// capture and master.
func Color(capture, master raster.Image) (float64, error) {
	capR, capG, capB := floatPlanes(capture)
	refR, refG, refB := floatPlanes(master)

	capDiffs := []float64{
		meanAbsDiff(capR, capG),
		meanAbsDiff(capR, capB),
		meanAbsDiff(capG, capB),
	}
	refDiffs := []float64{
		meanAbsDiff(refR, refG),
		meanAbsDiff(refR, refB),
		meanAbsDiff(refG, refB),
	}

	var ratioSum float64
	ratioCount := 0
	for i := range refDiffs {
		if refDiffs[i] <= 0 {
			continue
		}
		ratio := capDiffs[i] / refDiffs[i]
		if ratio > 1 {
			ratio = 1
		}
		ratioSum += ratio
		ratioCount++
	}
	meanRatio := 0.0
	if ratioCount > 0 {
		meanRatio = ratioSum / float64(ratioCount)
	}

	capVar := variance(capR) + variance(capG) + variance(capB)
	refVar := variance(refR) + variance(refG) + variance(refB)
	varRatio := 0.0
	if refVar > 0 {
		varRatio = capVar / refVar
		if varRatio > 1 {
			varRatio = 1
		}
	}

	pixelDiff := pixelMeanAbsDiff(capture, master)
	pixelScore := clip(1-(pixelDiff-5)/50, 0, 1)

	score := 0.3*meanRatio + 0.3*varRatio + 0.4*pixelScore
	return clip(score, 0, 1), nil
}

func pixelMeanAbsDiff(a, b raster.Image) float64 {
	n := a.Width * a.Height
	if n == 0 || a.Width != b.Width || a.Height != b.Height {
		return 0
	}
	var sum float64
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			ar, ag, ab := a.At(x, y)
			br, bg, bb := b.At(x, y)
			sum += absDiff(ar, br) + absDiff(ag, bg) + absDiff(ab, bb)
		}
	}
	return sum / float64(n*3)
}

func absDiff(a, b byte) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
