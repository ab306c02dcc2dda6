// Package codec provides the "image codec" collaborator: decoding and
// encoding the raster.Image the Core trades in, entirely outside the
// synthesis/verification core per the spec's no-I/O rule. Grounded on the
// teacher's internal/image.Load, which registers the same decoders
// (image/png, image/jpeg, golang.org/x/image/tiff) before calling
// image.Decode.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/development-nine-hawks/cdp/pkg/raster"
	_ "golang.org/x/image/tiff"
)

// Codec decodes and encodes rasters against an external byte representation.
type Codec interface {
	Decode(data []byte) (raster.Image, error)
	Encode(img raster.Image) ([]byte, error)
}

// PNG is the default Codec: lossless, matching the teacher's preference for
// PNG when round-tripping synthesized imagery (no JPEG quantisation noise
// for a pattern whose own pixel statistics are being measured).
type PNG struct{}

func (PNG) Decode(data []byte) (raster.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return raster.Image{}, fmt.Errorf("codec: decode: %w", err)
	}
	return raster.FromGoImage(img), nil
}

func (PNG) Encode(img raster.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToGoImage()); err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// JPEG trades losslessness for size; decoding any supported format is still
// accepted (image.Decode dispatches on content, not the codec's own name),
// only Encode is JPEG-specific.
type JPEG struct {
	Quality int
}

func (c JPEG) Decode(data []byte) (raster.Image, error) {
	return PNG{}.Decode(data)
}

func (c JPEG) Encode(img raster.Image) ([]byte, error) {
	quality := c.Quality
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.ToGoImage(), &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	return buf.Bytes(), nil
}
