package fragment

import (
	"fmt"
	"image"
	"image/color"
)

// Composite renders one piece: pixels whose fragment is in ids are copied
// from src (RGB inverted when invert is set), everything else is filled with
// the background. Source alpha is only kept on a transparent background, where
// fully transparent pixels are copied but never inverted.
func Composite(src *image.NRGBA, mask *Mask, ids []int, bg Background, invert bool) (*image.NRGBA, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if mask.Width != width || mask.Height != height {
		return nil, fmt.Errorf("%w: mask is %dx%d but image is %dx%d",
			ErrInvalidConfiguration, mask.Width, mask.Height, width, height)
	}

	member := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		member[id] = struct{}{}
	}

	fill := bg.Color()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if _, ok := member[mask.At(x, y)]; !ok {
				out.SetNRGBA(x, y, fill)
				continue
			}

			c := src.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			if bg != Transparent {
				c.A = 255
			}
			if invert && c.A > 0 {
				c = invertRGB(c)
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out, nil
}

func invertRGB(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}
