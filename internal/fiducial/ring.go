package fiducial

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

const angleSamples = 36
const minContrast = 30

// ringCount samples the radial intensity profile around centre on gray and
// returns the number of black-ring transitions, matching the stamper's
// ring/corner table. ok is false when the profile's contrast is too low to
// classify (ambiguous marker, falls back to positional assignment).
func ringCount(gray gocv.Mat, centre image.Point, ringMaxRadius int) (count int, ok bool) {
	w, h := gray.Cols(), gray.Rows()
	distToEdge := minInt(centre.X, w-centre.X, centre.Y, h-centre.Y)
	maxRadius := minInt(ringMaxRadius, distToEdge)
	if maxRadius < 1 {
		return 0, false
	}

	profile := make([]float64, maxRadius+1)
	profile[0] = float64(gray.GetUCharAt(centre.Y, centre.X))

	for r := 1; r <= maxRadius; r++ {
		var sum float64
		for a := 0; a < angleSamples; a++ {
			theta := 2 * math.Pi * float64(a) / float64(angleSamples)
			x := centre.X + int(math.Round(float64(r)*math.Cos(theta)))
			y := centre.Y + int(math.Round(float64(r)*math.Sin(theta)))
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			sum += float64(gray.GetUCharAt(y, x))
		}
		profile[r] = sum / float64(angleSamples)
	}

	pmin, pmax := profile[0], profile[0]
	for _, v := range profile {
		pmin = math.Min(pmin, v)
		pmax = math.Max(pmax, v)
	}
	if pmax-pmin < minContrast {
		return 0, false
	}

	darkThreshold := pmin + 0.35*(pmax-pmin)
	dark := make([]bool, len(profile))
	for i, v := range profile {
		dark[i] = v < darkThreshold
	}

	filledCheck := minInt(maxRadius/3, 6)
	allDark := true
	for i := 0; i < filledCheck && i < len(dark); i++ {
		if !dark[i] {
			allDark = false
			break
		}
	}
	if allDark {
		return 0, true
	}

	transitions := 0
	for i := 1; i < len(dark); i++ {
		if dark[i] && !dark[i-1] {
			transitions++
		}
	}
	return transitions, true
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
