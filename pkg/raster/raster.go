// Package raster provides the value-semantic RGB raster type shared by the
// synthesis and verification pipelines, plus conversions to and from
// standard library images and gocv matrices.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Image is an immutable-by-convention width*height RGB raster, stored
// row-major with 3 bytes per pixel. Callers must not mutate Pix after
// construction; use Clone to obtain a mutable copy.
type Image struct {
	Width  int
	Height int
	Pix    []byte // len == Width*Height*3, channel order R,G,B
}

// New allocates a zeroed (black) raster of the given size.
func New(width, height int) Image {
	return Image{Width: width, Height: height, Pix: make([]byte, width*height*3)}
}

// Empty reports whether the image has no pixels.
func (img Image) Empty() bool {
	return img.Width <= 0 || img.Height <= 0 || len(img.Pix) == 0
}

// At returns the RGB triple at (x, y). Out-of-bounds coordinates return zero.
func (img Image) At(x, y int) (r, g, b byte) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return 0, 0, 0
	}
	i := (y*img.Width + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Set writes the RGB triple at (x, y). Out-of-bounds coordinates are ignored.
func (img Image) Set(x, y int, r, g, b byte) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return
	}
	i := (y*img.Width + x) * 3
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
}

// Clone returns a deep copy with its own backing array.
func (img Image) Clone() Image {
	out := Image{Width: img.Width, Height: img.Height, Pix: make([]byte, len(img.Pix))}
	copy(out.Pix, img.Pix)
	return out
}

// Equal reports whether two images are bit-for-bit identical.
func (img Image) Equal(other Image) bool {
	if img.Width != other.Width || img.Height != other.Height {
		return false
	}
	if len(img.Pix) != len(other.Pix) {
		return false
	}
	for i := range img.Pix {
		if img.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// FromGoImage converts any image.Image to an RGB raster, dropping alpha.
func FromGoImage(src image.Image) Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}
	return out
}

// ToGoImage converts the raster to a standard library *image.RGBA.
func (img Image) ToGoImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// ToMat converts the raster to a gocv.Mat in BGR channel order, the layout
// gocv's image-processing functions expect.
func (img Image) ToMat() (gocv.Mat, error) {
	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("raster: cannot convert empty image to Mat")
	}
	mat := gocv.NewMatWithSize(img.Height, img.Width, gocv.MatTypeCV8UC3)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.At(x, y)
			mat.SetUCharAt(y, x*3+0, b)
			mat.SetUCharAt(y, x*3+1, g)
			mat.SetUCharAt(y, x*3+2, r)
		}
	}
	return mat, nil
}

// FromMat converts a BGR gocv.Mat back to an RGB raster.
func FromMat(m gocv.Mat) (Image, error) {
	if m.Empty() {
		return Image{}, fmt.Errorf("raster: cannot convert empty Mat")
	}
	w, h := m.Cols(), m.Rows()
	var src gocv.Mat
	if m.Channels() == 3 {
		src = m
	} else {
		src = gocv.NewMat()
		defer src.Close()
		gocv.CvtColor(m, &src, gocv.ColorGrayToBGR)
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b := src.GetUCharAt(y, x*3+0)
			g := src.GetUCharAt(y, x*3+1)
			r := src.GetUCharAt(y, x*3+2)
			out.Set(x, y, r, g, b)
		}
	}
	return out, nil
}
