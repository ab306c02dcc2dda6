package synth

import (
	"image/color"

	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"gocv.io/x/gocv"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
var black = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// Stamp overlays the four corner fiducial markers onto img, drawing through
// a gocv.Mat view for the same circle-drawing primitives the rest of the
// pipeline uses, and returns the stamped raster.
func Stamp(img raster.Image) (raster.Image, error) {
	mat, err := img.ToMat()
	if err != nil {
		return raster.Image{}, err
	}
	defer mat.Close()

	for _, c := range markers.All {
		center := markers.Centre(c, img.Width)
		gocv.Circle(&mat, center, markers.DiskRadius, white, -1)

		if c == markers.BottomRight {
			gocv.Circle(&mat, center, 20, black, -1)
			continue
		}
		for _, r := range markers.RingRadii[c] {
			gocv.Circle(&mat, center, r, black, markers.RingThickness)
		}
	}

	return raster.FromMat(mat)
}
