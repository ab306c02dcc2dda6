package synth

import "math"

// GratingField computes the frequency-modulated sinusoidal luminance field
// (component B). The field is row-constant: every row of the returned
// width*height byte slice is identical, since the instantaneous frequency
// and cumulative phase depend only on the column x.
func GratingField(width, height int, p Params) []byte {
	phase := make([]float64, width)
	var cum float64
	twoPiOverW := 2 * math.Pi / float64(width)
	for x := 0; x < width; x++ {
		instFreq := p.BaseFreq * (1 + p.ModDepth*math.Sin(2*math.Pi*p.ModFreq*float64(x)/float64(width)))
		cum += instFreq * twoPiOverW
		phase[x] = cum
	}

	row := make([]byte, width)
	for x := 0; x < width; x++ {
		v := (math.Sin(phase[x]) + 1) / 2 * 255
		row[x] = byte(clampFloat(v, 0, 255))
	}

	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		copy(out[y*width:(y+1)*width], row)
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
