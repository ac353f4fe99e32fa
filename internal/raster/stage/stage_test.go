package stage

import (
	"image"
	"image/color"
	"testing"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int, a, b color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, a)
			} else {
				img.SetNRGBA(x, y, b)
			}
		}
	}
	return img
}

func TestInvertStage(t *testing.T) {
	src := checker(2, 2, color.NRGBA{0, 100, 255, 77}, color.NRGBA{255, 255, 255, 255})
	p := raster.New(src)

	require.NoError(t, p.Pipeline(&InvertStage{}))
	out := raster.ToNRGBA(p.Img)
	assert.Equal(t, color.NRGBA{255, 155, 0, 77}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{0, 100, 255, 77}, src.NRGBAAt(0, 0), "source is untouched")

	require.NoError(t, p.Pipeline(&InvertStage{}))
	assert.Equal(t, src.Pix, raster.ToNRGBA(p.Img).Pix)
}

func TestReplaceColorStage(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 200}
	nearWhite := color.NRGBA{250, 250, 250, 255}

	t.Run("exact match keeps alpha", func(t *testing.T) {
		p := raster.New(checker(2, 1, white, nearWhite))
		require.NoError(t, p.Pipeline(&ReplaceColorStage{Target: color.White, Replace: color.Black}))

		out := raster.ToNRGBA(p.Img)
		assert.Equal(t, color.NRGBA{0, 0, 0, 200}, out.NRGBAAt(0, 0))
		assert.Equal(t, nearWhite, out.NRGBAAt(1, 0))
	})

	t.Run("tolerance widens the match", func(t *testing.T) {
		p := raster.New(checker(2, 1, white, nearWhite))
		require.NoError(t, p.Pipeline(&ReplaceColorStage{Target: color.White, Replace: color.Black, Tolerance: 10}))

		out := raster.ToNRGBA(p.Img)
		assert.Equal(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(1, 0))
	})
}

func TestFitStage(t *testing.T) {
	t.Run("shrinks the longest side", func(t *testing.T) {
		p := raster.New(checker(40, 20, color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 255, 255}))
		require.NoError(t, p.Pipeline(&FitStage{MaxSize: 10}))
		assert.Equal(t, image.Rect(0, 0, 10, 5), p.Bounds)
		assert.Equal(t, p.Bounds, p.Img.Bounds())
	})

	t.Run("leaves small images alone", func(t *testing.T) {
		src := checker(8, 8, color.NRGBA{}, color.NRGBA{})
		p := raster.New(src)
		require.NoError(t, p.Pipeline(&FitStage{MaxSize: 10}, &FitStage{}))
		assert.Same(t, src, p.Img)
	})
}
