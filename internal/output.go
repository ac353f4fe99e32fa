package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rm-hull/voronoi-fragments/internal/fragment"
	"github.com/rm-hull/voronoi-fragments/internal/raster"
)

// BaseName is the source file name up to its first dot.
func BaseName(source string) string {
	name := filepath.Base(source)
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// PieceFilename names the index'th (1-based) piece of source.
func PieceFilename(source string, index, fragmentCount int, bg fragment.Background) string {
	return fmt.Sprintf("%s_fragment%d_pieces%d.%s", BaseName(source), index, fragmentCount, bg.Ext())
}

// SavePieces writes every piece into dir. Each piece is encoded to a temporary
// file first and nothing is renamed into place until all of them succeeded.
func SavePieces(dir, source string, pieces []fragment.Piece, bg fragment.Background) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpNames := make([]string, 0, len(pieces))
	cleanup := func() {
		for _, name := range tmpNames {
			_ = os.Remove(name)
		}
	}

	for _, piece := range pieces {
		tmpFile, err := os.CreateTemp(dir, "piece-*.tmp")
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to create temporary file: %w", err)
		}
		tmpNames = append(tmpNames, tmpFile.Name())
		if err := tmpFile.Close(); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to close temporary file: %w", err)
		}

		if err := raster.SaveAs(tmpFile.Name(), bg.Ext(), piece.Image); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to write piece: %w", err)
		}
	}

	paths := make([]string, len(pieces))
	for i, piece := range pieces {
		paths[i] = filepath.Join(dir, PieceFilename(source, i+1, piece.FragmentCount, bg))
		if err := os.Rename(tmpNames[i], paths[i]); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to rename temporary file: %w", err)
		}
	}
	return paths, nil
}
