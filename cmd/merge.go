package cmd

import (
	"image"
	"log"

	"github.com/rm-hull/voronoi-fragments/internal"
	"github.com/rm-hull/voronoi-fragments/internal/raster"
	"github.com/rm-hull/voronoi-fragments/internal/raster/stage"
)

func Merge(inputs []string, output, filter string, invert bool) error {
	filterColor, err := internal.ParseColor(filter)
	if err != nil {
		return err
	}

	files, err := expandInputs(inputs, nil)
	if err != nil {
		return err
	}

	images := make([]image.Image, len(files))
	for i, file := range files {
		log.Printf("Opening image %d: %s", i, file)
		if images[i], err = raster.Open(file); err != nil {
			return err
		}
	}

	merged, err := raster.Merge(filterColor, images...)
	if err != nil {
		return err
	}

	p := raster.New(merged)
	if invert {
		if err := p.Pipeline(&stage.InvertStage{}); err != nil {
			return err
		}
	}

	if err := raster.Save(output, p.Img); err != nil {
		return err
	}
	log.Printf("Merged %d images into %s", len(images), output)
	return nil
}
