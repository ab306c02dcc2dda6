package metrics

import (
	"github.com/development-nine-hawks/cdp/internal/warp"
	"github.com/development-nine-hawks/cdp/pkg/raster"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

var correlationBlockSizes = []int{8, 16, 32, 64}

// Correlation scores the best Pearson correlation between capture's and
// master's per-tile mean intensity grids across a cascade of block sizes.
func Correlation(capture, master raster.Image) (float64, error) {
	if capture.Width != master.Width || capture.Height != master.Height {
		resized, err := warp.Resize(capture, master.Width, master.Height)
		if err != nil {
			return 0, err
		}
		capture = resized
	}

	capGray, err := grayFloats(capture)
	if err != nil {
		return 0, err
	}
	refGray, err := grayFloats(master)
	if err != nil {
		return 0, err
	}

	best := 0.0
	for _, bs := range correlationBlockSizes {
		capTiles, refTiles, ok := tileMeans(capGray, refGray, capture.Width, capture.Height, bs)
		if !ok {
			continue
		}
		c := stat.Correlation(capTiles, refTiles, nil)
		if c > best {
			best = c
		}
	}

	return clip(best/0.4, 0, 1), nil
}

func grayFloats(img raster.Image) ([]float64, error) {
	src, err := img.ToMat()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	out := make([]float64, img.Width*img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out[y*img.Width+x] = float64(gray.GetUCharAt(y, x))
		}
	}
	return out, nil
}

// tileMeans divides both grayscale buffers into bs x bs tiles and returns
// their flattened per-tile means. ok is false when either dimension yields
// fewer than 4 tiles per side.
func tileMeans(capGray, refGray []float64, w, h, bs int) (capMeans, refMeans []float64, ok bool) {
	tilesX := w / bs
	tilesY := h / bs
	if tilesX < 4 || tilesY < 4 {
		return nil, nil, false
	}

	capMeans = make([]float64, 0, tilesX*tilesY)
	refMeans = make([]float64, 0, tilesX*tilesY)

	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			var capSum, refSum float64
			for y := ty * bs; y < (ty+1)*bs; y++ {
				row := y * w
				for x := tx * bs; x < (tx+1)*bs; x++ {
					capSum += capGray[row+x]
					refSum += refGray[row+x]
				}
			}
			n := float64(bs * bs)
			capMeans = append(capMeans, capSum/n)
			refMeans = append(refMeans, refSum/n)
		}
	}
	return capMeans, refMeans, true
}
