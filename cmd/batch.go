package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rm-hull/voronoi-fragments/internal"
)

// expandInputs turns the command line arguments into a file list: directories
// contribute the images they contain, files are taken as given.
func expandInputs(inputs []string, skip func(name string) bool) ([]string, error) {
	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, input)
			continue
		}
		found, err := internal.ListImages(input, skip)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, internal.ErrNoFiles
	}
	return files, nil
}

func runBatch(files []string, poolSize int, job internal.Job) error {
	processor, err := internal.NewProcessor(files, poolSize, job)
	if err != nil {
		return err
	}
	if errs := processor.Run(); len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}

// outputDir is outDir when given, otherwise the directory holding file.
func outputDir(outDir, file string) string {
	if outDir != "" {
		return outDir
	}
	return filepath.Dir(file)
}

func stem(file string) string {
	name := filepath.Base(file)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
