package fragment

import (
	"errors"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrEmptyInput           = errors.New("empty input")
	// ErrImageDecode is returned, wrapped, when the source cannot be decoded.
	ErrImageDecode = raster.ErrDecode
)
