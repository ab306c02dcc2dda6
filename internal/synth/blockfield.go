package synth

import "github.com/development-nine-hawks/cdp/internal/cdprand"

// BlockField produces the 8x8-block random luminance field (component C):
// width*height is partitioned into BlockSize x BlockSize tiles (truncated
// at the right/bottom edge when the dimensions are not a multiple of
// BlockSize), and every pixel in a tile takes that tile's single
// uniformly-drawn byte.
func BlockField(width, height int, seed int32) []byte {
	src := cdprand.NewSource(int64(seed))

	blockCols := (width + BlockSize - 1) / BlockSize
	blockRows := (height + BlockSize - 1) / BlockSize
	blockValues := src.Bytes2D(blockRows, blockCols)

	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		by := y / BlockSize
		for x := 0; x < width; x++ {
			bx := x / BlockSize
			out[y*width+x] = blockValues[by][bx]
		}
	}
	return out
}
