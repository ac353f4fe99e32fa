package stage

import (
	"image"
	"image/color"
	"math"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
)

type ReplaceColorStage struct {
	Target    color.Color
	Replace   color.Color
	Tolerance float64
}

// Process swaps the RGB of pixels within Tolerance of Target for the RGB of Replace
// Distance is euclidean in 8-bit RGB space, so a Tolerance of 0 only matches Target exactly
// The alpha channel of every pixel is preserved
func (s *ReplaceColorStage) Process(p *raster.Image) error {
	src := raster.ToNRGBA(p.Img)
	b := src.Bounds()
	out := image.NewNRGBA(b)

	target := color.NRGBAModel.Convert(s.Target).(color.NRGBA)
	replace := color.NRGBAModel.Convert(s.Replace).(color.NRGBA)
	tR, tG, tB := float64(target.R), float64(target.G), float64(target.B)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			R, G, B := float64(c.R), float64(c.G), float64(c.B)
			dist := math.Sqrt((tR-R)*(tR-R) + (tG-G)*(tG-G) + (tB-B)*(tB-B))
			if dist <= s.Tolerance {
				c.R, c.G, c.B = replace.R, replace.G, replace.B
			}
			out.SetNRGBA(x, y, c)
		}
	}
	p.Img = out
	p.Bounds = b
	return nil
}
