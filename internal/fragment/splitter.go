package fragment

import (
	"fmt"
	"image"
	"io"
	"math/rand/v2"
	"runtime"

	"github.com/rm-hull/voronoi-fragments/internal/raster"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Pieces     int
	Fragments  int
	Background Background
	Invert     bool
	Index      Index
	// Workers bounds how many pieces are composited at once; values below 1
	// mean one per CPU.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Pieces:     8,
		Fragments:  100,
		Background: White,
	}
}

func (o Options) Validate() error {
	if err := validateCounts(o.Pieces, o.Fragments); err != nil {
		return err
	}
	if o.Background < White || o.Background > Transparent {
		return fmt.Errorf("%w: unknown background %d", ErrInvalidConfiguration, o.Background)
	}
	return nil
}

type Piece struct {
	Image         *image.NRGBA
	FragmentCount int
	FragmentIDs   []int
}

// Splitter cuts images into pieces made of randomly chosen Voronoi fragments.
// A Splitter draws from its random source on every call and must not be
// shared between goroutines.
type Splitter struct {
	rng *rand.Rand
}

func NewSplitter(rng *rand.Rand) *Splitter {
	return &Splitter{rng: rng}
}

// Split returns one piece per opts.Pieces, in piece order. Either every piece
// is produced or an error is returned.
func (s *Splitter) Split(img image.Image, opts Options) ([]Piece, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src := raster.ToNRGBA(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	seeds, err := GenerateSeeds(s.rng, width, height, opts.Fragments)
	if err != nil {
		return nil, err
	}

	mask, err := AssignWith(opts.Index, seeds, width, height)
	if err != nil {
		return nil, err
	}

	groups, err := Partition(s.rng, opts.Fragments, opts.Pieces)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	pieces := make([]Piece, len(groups))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, ids := range groups {
		g.Go(func() error {
			out, err := Composite(src, mask, ids, opts.Background, opts.Invert)
			if err != nil {
				return fmt.Errorf("failed to composite piece %d: %w", i+1, err)
			}
			pieces[i] = Piece{
				Image:         out,
				FragmentCount: len(ids),
				FragmentIDs:   ids,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pieces, nil
}

// SplitReader decodes the source from r and runs it through stages (resizing,
// say) before splitting it.
func (s *Splitter) SplitReader(r io.Reader, opts Options, stages ...raster.PipelineStage) ([]Piece, error) {
	img, err := raster.NewFromReader(r)
	if err != nil {
		return nil, err
	}
	if err := img.Pipeline(stages...); err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}
	return s.Split(img.Img, opts)
}
