package stage

import (
	"image"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
	"golang.org/x/image/draw"
)

type FitStage struct {
	MaxSize int
}

// Process shrinks the image with Catmull-Rom resampling so that neither side
// exceeds MaxSize, keeping the aspect ratio
// Images already within bounds, or a MaxSize below 1, are left alone
func (s *FitStage) Process(p *raster.Image) error {
	w, h := p.Bounds.Dx(), p.Bounds.Dy()
	if s.MaxSize < 1 || (w <= s.MaxSize && h <= s.MaxSize) {
		return nil
	}

	scale := float64(s.MaxSize) / float64(max(w, h))
	dw := max(1, int(float64(w)*scale+0.5))
	dh := max(1, int(float64(h)*scale+0.5))

	resized := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(resized, resized.Bounds(), p.Img, p.Bounds, draw.Src, nil)
	p.Img = resized
	p.Bounds = resized.Bounds()
	return nil
}
