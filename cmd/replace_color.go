package cmd

import (
	"path/filepath"
	"strings"

	"github.com/rm-hull/voronoi-fragments/internal"
	"github.com/rm-hull/voronoi-fragments/internal/raster/stage"
)

func ReplaceColor(inputs []string, outDir, target, replace string, tolerance float64, poolSize int) error {
	from, err := internal.ParseColor(target)
	if err != nil {
		return err
	}
	to, err := internal.ParseColor(replace)
	if err != nil {
		return err
	}

	files, err := expandInputs(inputs, func(name string) bool {
		return strings.HasSuffix(strings.ToLower(name), "_b.png")
	})
	if err != nil {
		return err
	}

	replaceStage := &stage.ReplaceColorStage{Target: from, Replace: to, Tolerance: tolerance}
	return runBatch(files, poolSize, func(file string) error {
		out := filepath.Join(outputDir(outDir, file), stem(file)+"_b.png")
		return transformFile(file, out, replaceStage)
	})
}
