package stage

import (
	"image"
	"image/color"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
)

type InvertStage struct{}

// Process replaces every RGB channel c with 255-c, leaving alpha untouched
func (s *InvertStage) Process(p *raster.Image) error {
	src := raster.ToNRGBA(p.Img)
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			out.SetNRGBA(x, y, color.NRGBA{255 - c.R, 255 - c.G, 255 - c.B, c.A})
		}
	}
	p.Img = out
	p.Bounds = b
	return nil
}
