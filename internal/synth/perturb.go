package synth

import (
	"github.com/development-nine-hawks/cdp/internal/cdprand"
	"github.com/development-nine-hawks/cdp/pkg/raster"
)

// Perturb combines the grating and block-field grayscale layers (equal
// 0.5/0.5 weight), replicates the result across the three colour channels,
// and applies component D's per-block, per-channel signed colour shift.
func Perturb(width, height int, grating, block []byte, seed int32, intensity int) raster.Image {
	src := cdprand.NewSource(int64(seed) + 1000)

	blockCols := (width + BlockSize - 1) / BlockSize
	blockRows := (height + BlockSize - 1) / BlockSize

	shifts := make([][][3]int, blockRows)
	for by := 0; by < blockRows; by++ {
		shifts[by] = make([][3]int, blockCols)
		for bx := 0; bx < blockCols; bx++ {
			for c := 0; c < 3; c++ {
				shifts[by][bx][c] = src.SignedRange(intensity)
			}
		}
	}

	out := raster.New(width, height)
	for y := 0; y < height; y++ {
		by := y / BlockSize
		for x := 0; x < width; x++ {
			bx := x / BlockSize
			gray := 0.5*float64(grating[y*width+x]) + 0.5*float64(block[y*width+x])
			s := shifts[by][bx]
			r := clampByte(gray + float64(s[0]))
			g := clampByte(gray + float64(s[1]))
			b := clampByte(gray + float64(s[2]))
			out.Set(x, y, r, g, b)
		}
	}
	return out
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
