package metrics

import "github.com/development-nine-hawks/cdp/pkg/raster"

// Scores bundles the four raw test scores, each already clipped to [0,1].
type Scores struct {
	Moire       float64
	Color       float64
	Correlation float64
	Gradient    float64
}

// Weights are the fixed contributions of each test to overall confidence.
var Weights = struct {
	Moire       float64
	Color       float64
	Correlation float64
	Gradient    float64
}{
	Moire:       0.40,
	Color:       0.30,
	Correlation: 0.20,
	Gradient:    0.10,
}

// Confidence combines the four test scores into the overall confidence.
func (s Scores) Confidence() float64 {
	return Weights.Moire*s.Moire + Weights.Color*s.Color +
		Weights.Correlation*s.Correlation + Weights.Gradient*s.Gradient
}

// Verdict classifies a confidence value into one of three labels. The
// fourth verdict, ERROR, is reserved for host-level failures (invalid
// input, localisation failure) and is never produced here.
type Verdict string

const (
	VerdictAuthentic   Verdict = "AUTHENTIC"
	VerdictSuspicious  Verdict = "SUSPICIOUS"
	VerdictCounterfeit Verdict = "COUNTERFEIT"
)

// VerdictFor classifies confidence per the fixed thresholds: >=0.70
// authentic, >=0.50 suspicious, else counterfeit.
func VerdictFor(confidence float64) Verdict {
	switch {
	case confidence >= 0.70:
		return VerdictAuthentic
	case confidence >= 0.50:
		return VerdictSuspicious
	default:
		return VerdictCounterfeit
	}
}

// Compute runs all four statistical tests between an aligned capture and
// the master, in the teacher's cascade-of-independent-checks style.
func Compute(capture, master raster.Image) (Scores, error) {
	moire, err := Moire(capture, master)
	if err != nil {
		return Scores{}, err
	}
	color, err := Color(capture, master)
	if err != nil {
		return Scores{}, err
	}
	correlation, err := Correlation(capture, master)
	if err != nil {
		return Scores{}, err
	}
	gradient, err := Gradient(capture, master)
	if err != nil {
		return Scores{}, err
	}
	return Scores{Moire: moire, Color: color, Correlation: correlation, Gradient: gradient}, nil
}
