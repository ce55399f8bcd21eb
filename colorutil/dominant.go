package colorutil

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

var ErrEmptyImage = errors.New("image has no pixels")

// DominantColor averages the whole image down to a single pixel and returns
// it as #RRGGBB. Alpha is ignored.
func DominantColor(img image.Image) (string, error) {
	if img.Bounds().Empty() {
		return "", ErrEmptyImage
	}
	pixel := imaging.Resize(img, 1, 1, imaging.Box).NRGBAAt(0, 0)
	return RGBToHex(RGB{R: pixel.R, G: pixel.G, B: pixel.B}), nil
}

// DecodeDominantColor decodes a jpeg, png, gif, bmp or tiff stream and
// returns its dominant color.
func DecodeDominantColor(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return DominantColor(img)
}
