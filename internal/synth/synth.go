package synth

import "github.com/development-nine-hawks/cdp/pkg/raster"

// Generate runs the full synthesis pipeline (A -> B, A -> C added in equal
// weight, then D, then E) and returns the finished pattern raster.
func Generate(seed int32, size int) (raster.Image, error) {
	params := DeriveParams(seed)

	grating := GratingField(size, size, params)
	block := BlockField(size, size, seed)
	perturbed := Perturb(size, size, grating, block, seed, PerturbationIntensity)

	return Stamp(perturbed)
}
