package cmd

import (
	"path/filepath"
	"strings"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
	"github.com/rm-hull/voronoi-fragments/internal/raster/stage"
)

func Invert(inputs []string, outDir string, poolSize int) error {
	files, err := expandInputs(inputs, func(name string) bool {
		return strings.Contains(name, "_inverted")
	})
	if err != nil {
		return err
	}

	return runBatch(files, poolSize, func(file string) error {
		out := filepath.Join(outputDir(outDir, file), stem(file)+"_inverted.png")
		return transformFile(file, out, &stage.InvertStage{})
	})
}

func transformFile(in, out string, stages ...raster.PipelineStage) error {
	img, err := raster.Open(in)
	if err != nil {
		return err
	}

	p := raster.New(img)
	if err := p.Pipeline(stages...); err != nil {
		return err
	}
	return raster.Save(out, p.Img)
}
