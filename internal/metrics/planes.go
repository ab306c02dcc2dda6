// Package metrics implements the four statistical comparison tests
// (component H's numeric half) and the weighted scoring/verdict (component
// I). Each test operates on the aligned capture and the master raster at
// matching dimensions, grounded on the teacher's gocv-based per-pixel
// comparison idiom (internal/via/detector.go, internal/board) generalized
// from PCB feature matching to whole-image statistics, plus gonum's stat
// and dsp/fourier packages where the teacher's own stack doesn't reach.
package metrics

import "github.com/development-nine-hawks/cdp/pkg/raster"

// floatPlanes returns the R, G, B channel planes of img as float64 slices.
func floatPlanes(img raster.Image) (r, g, b []float64) {
	n := img.Width * img.Height
	r = make([]float64, n)
	g = make([]float64, n)
	b = make([]float64, n)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			cr, cg, cb := img.At(x, y)
			i := y*img.Width + x
			r[i] = float64(cr)
			g[i] = float64(cg)
			b[i] = float64(cb)
		}
	}
	return r, g, b
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func variance(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := mean(v)
	var sum float64
	for _, x := range v {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(v))
}

func meanAbsDiff(a, b []float64) float64 {
	n := len(a)
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(n)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
