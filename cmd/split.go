package cmd

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rm-hull/voronoi-fragments/internal"
	"github.com/rm-hull/voronoi-fragments/internal/fragment"
	"github.com/rm-hull/voronoi-fragments/internal/raster"
	"github.com/rm-hull/voronoi-fragments/internal/raster/stage"
)

type SplitArgs struct {
	Config   internal.Config
	OutDir   string
	Preview  bool
	PoolSize int
}

func Split(inputs []string, args SplitArgs) error {
	if err := args.Config.SplitOptions().Validate(); err != nil {
		return err
	}

	files, err := expandInputs(inputs, func(name string) bool {
		return strings.Contains(name, "_fragment")
	})
	if err != nil {
		return err
	}

	return runBatch(files, args.PoolSize, func(file string) error {
		return splitFile(file, args)
	})
}

func splitFile(file string, args SplitArgs) error {
	img, err := raster.Open(file)
	if err != nil {
		return err
	}

	src := raster.New(img)
	if err := src.Pipeline(&stage.FitStage{MaxSize: args.Config.MaxSize}); err != nil {
		return fmt.Errorf("failed to resize: %w", err)
	}

	pieces, err := fragment.NewSplitter(args.Config.Rand()).Split(src.Img, args.Config.SplitOptions())
	if err != nil {
		return err
	}

	dir := outputDir(args.OutDir, file)
	paths, err := internal.SavePieces(dir, file, pieces, args.Config.Background)
	if err != nil {
		return err
	}
	for i, piece := range pieces {
		log.Printf("Image %d: %d fragments -> %s", i+1, piece.FragmentCount, paths[i])
	}

	if args.Preview {
		return writePreview(dir, file, pieces)
	}
	return nil
}

func writePreview(dir, file string, pieces []fragment.Piece) error {
	frames := make([]image.Image, len(pieces))
	for i, piece := range pieces {
		frames[i] = piece.Image
	}

	data, err := raster.Animate(frames, 1.0)
	if err != nil {
		return fmt.Errorf("failed to build preview: %w", err)
	}

	name := filepath.Join(dir, internal.BaseName(file)+"_preview.png")
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	log.Printf("Preview written to %s", name)
	return nil
}
