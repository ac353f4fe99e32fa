package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	ErrNoImages     = errors.New("no images")
	ErrSizeMismatch = errors.New("image sizes differ")
)

// Merge stacks images onto a transparent canvas the size of the first one.
// A pixel is taken from an image when it is not fully transparent and its
// RGB differs from filter; later images overwrite earlier ones.
func Merge(filter color.Color, images ...image.Image) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	size := images[0].Bounds().Size()
	fc := color.NRGBAModel.Convert(filter).(color.NRGBA)
	out := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))

	for i, img := range images {
		if got := img.Bounds().Size(); got != size {
			return nil, fmt.Errorf("%w: image %d is %v, expected %v", ErrSizeMismatch, i, got, size)
		}

		src := ToNRGBA(img)
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				c := src.NRGBAAt(x, y)
				if c.A == 0 || (c.R == fc.R && c.G == fc.G && c.B == fc.B) {
					continue
				}
				out.SetNRGBA(x, y, c)
			}
		}
	}
	return out, nil
}
