package metrics

import (
	"math"

	"github.com/development-nine-hawks/cdp/pkg/raster"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/dsp/fourier"
)

// dcZeroHalf is half the side of the square zeroed around the DC term of
// the centred spectrum, per the moire test's "zero a 6x6 block" step.
const dcZeroHalf = 3

// moireSpectrum returns the normalised, centred log-magnitude 2-D spectrum
// of img's grayscale, with a 6x6 DC block zeroed.
func moireSpectrum(img raster.Image) ([][]float64, error) {
	src, err := img.ToMat()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	n := img.Height
	m := img.Width

	rows := make([][]complex128, n)
	for y := 0; y < n; y++ {
		row := make([]complex128, m)
		for x := 0; x < m; x++ {
			row[x] = complex(float64(gray.GetUCharAt(y, x)), 0)
		}
		rows[y] = row
	}

	rowFFT := fourier.NewCmplxFFT(m)
	for y := 0; y < n; y++ {
		rows[y] = rowFFT.Coefficients(nil, rows[y])
	}

	colFFT := fourier.NewCmplxFFT(n)
	col := make([]complex128, n)
	for x := 0; x < m; x++ {
		for y := 0; y < n; y++ {
			col[y] = rows[y][x]
		}
		col = colFFT.Coefficients(col, col)
		for y := 0; y < n; y++ {
			rows[y][x] = col[y]
		}
	}

	mag := make([][]float64, n)
	for y := 0; y < n; y++ {
		mag[y] = make([]float64, m)
		for x := 0; x < m; x++ {
			mag[y][x] = math.Log1p(cmplxAbs(rows[y][x]))
		}
	}

	centred := fftShift(mag)
	zeroDCBlock(centred)
	normalise(centred)
	return centred, nil
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// fftShift swaps quadrants so the DC term sits at the array's centre.
func fftShift(m [][]float64) [][]float64 {
	h := len(m)
	if h == 0 {
		return m
	}
	w := len(m[0])
	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
	}
	cy, cx := h/2, w/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[(y+cy)%h][(x+cx)%w] = m[y][x]
		}
	}
	return out
}

func zeroDCBlock(m [][]float64) {
	h := len(m)
	if h == 0 {
		return
	}
	w := len(m[0])
	cy, cx := h/2, w/2
	for y := cy - dcZeroHalf; y < cy+dcZeroHalf; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := cx - dcZeroHalf; x < cx+dcZeroHalf; x++ {
			if x < 0 || x >= w {
				continue
			}
			m[y][x] = 0
		}
	}
}

func normalise(m [][]float64) {
	max := 0.0
	for _, row := range m {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	if max == 0 {
		return
	}
	for _, row := range m {
		for x := range row {
			row[x] /= max
		}
	}
}

// Moire scores the reference-anchored moire test: mean absolute difference
// between capture's and master's normalised spectra.
func Moire(capture, master raster.Image) (float64, error) {
	capSpec, err := moireSpectrum(capture)
	if err != nil {
		return 0, err
	}
	refSpec, err := moireSpectrum(master)
	if err != nil {
		return 0, err
	}

	h := len(refSpec)
	if h == 0 || h != len(capSpec) {
		return 0, nil
	}
	w := len(refSpec[0])

	var sum float64
	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w && x < len(capSpec[y]); x++ {
			d := capSpec[y][x] - refSpec[y][x]
			if d < 0 {
				d = -d
			}
			sum += d
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	meanDiff := sum / float64(count)
	return clip(1-meanDiff/0.20, 0, 1), nil
}

// MoireReferenceFree is the reference-free fallback: the ratio of annular
// spectral energy (0.1H < r < 0.35H) to total energy. It is not exercised
// on the Verify path, which always has a master to compare against, but is
// kept for hosts that want to score a single image in isolation.
func MoireReferenceFree(img raster.Image) (float64, error) {
	spec, err := moireSpectrum(img)
	if err != nil {
		return 0, err
	}
	h := len(spec)
	if h == 0 {
		return 0, nil
	}
	w := len(spec[0])
	cy, cx := float64(h)/2, float64(w)/2

	var annular, total float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := spec[y][x]
			total += v
			r := math.Hypot(float64(y)-cy, float64(x)-cx)
			if r > 0.1*float64(h) && r < 0.35*float64(h) {
				annular += v
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	ratio := annular / total
	return clip(1-(ratio-0.3)/0.25, 0, 1), nil
}
