package raster

import (
	"image"
	"io"
)

// Image is a decoded raster passed through a chain of pipeline stages.
// Stages replace Img with a new buffer rather than mutating it in place.
type Image struct {
	Img    image.Image
	Bounds image.Rectangle
}

type PipelineStage interface {
	Process(img *Image) error
}

func New(img image.Image) *Image {
	return &Image{
		Img:    img,
		Bounds: img.Bounds(),
	}
}

func NewFromReader(r io.Reader) (*Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return New(img), nil
}

func (p *Image) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}
