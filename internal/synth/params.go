// Package synth implements the pattern-synthesis pipeline: the grating
// field (B), the PRNG macro-block field (C), chromatic perturbation (D),
// and the fiducial stamper (E), composed in that order by Generate.
package synth

import "github.com/development-nine-hawks/cdp/internal/cdprand"

// BlockSize is the side length, in pixels, of the macro-block tiles used by
// both the PRNG block field and the chromatic perturbation stage.
const BlockSize = 8

// PerturbationIntensity is the default +/- range of the per-block,
// per-channel signed colour shift (component D).
const PerturbationIntensity = 25

// Params are the derived synthesis parameters for a given seed: the
// frequency-modulation parameters driving the grating field.
type Params struct {
	BaseFreq float64
	ModFreq  float64
	ModDepth float64
}

// DeriveParams draws (base_freq, mod_freq, mod_depth) from the seed+2000
// stream, the same stream the grating field itself is seeded from.
func DeriveParams(seed int32) Params {
	src := cdprand.NewSource(int64(seed) + 2000)
	return Params{
		BaseFreq: 20 + 40*src.Float64(),
		ModFreq:  2 + 6*src.Float64(),
		ModDepth: 0.1 + 0.3*src.Float64(),
	}
}
