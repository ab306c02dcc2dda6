package metrics

import (
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"gocv.io/x/gocv"
)

// Gradient scores the ratio of capture's to master's mean Sobel gradient
// magnitude, penalising a capture that is blurrier than the master: a ratio
// of 0.15 or less scores 0 and a ratio of 0.6 or more scores 1, so extra
// sharpness in the capture is not penalised.
func Gradient(capture, master raster.Image) (float64, error) {
	capEnergy, err := sobelMeanMagnitude(capture)
	if err != nil {
		return 0, err
	}
	refEnergy, err := sobelMeanMagnitude(master)
	if err != nil {
		return 0, err
	}
	if refEnergy == 0 {
		return 0, nil
	}
	return clip((capEnergy/refEnergy-0.15)/0.45, 0, 1), nil
}

func sobelMeanMagnitude(img raster.Image) (float64, error) {
	src, err := img.ToMat()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	gx := gocv.NewMat()
	defer gx.Close()
	gy := gocv.NewMat()
	defer gy.Close()
	gocv.Sobel(gray, &gx, gocv.MatTypeCV64F, 1, 0, 3, 1, 0, gocv.BorderDefault)
	gocv.Sobel(gray, &gy, gocv.MatTypeCV64F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	mag := gocv.NewMat()
	defer mag.Close()
	gocv.Magnitude(gx, gy, &mag)

	mean := mag.Mean()
	return mean.Val1, nil
}
