package fragment

import (
	"fmt"
	"math"
)

// Mask maps every pixel to the 1-based ID of the fragment it belongs to.
// IDs are stored row-major; 0 never survives a completed assignment.
type Mask struct {
	Width  int
	Height int
	IDs    []int
}

func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		IDs:    make([]int, width*height),
	}
}

func (m *Mask) At(x, y int) int {
	return m.IDs[y*m.Width+x]
}

func (m *Mask) Set(x, y, id int) {
	m.IDs[y*m.Width+x] = id
}

type Index int

const (
	// IndexBruteForce scans every seed for every pixel.
	IndexBruteForce Index = iota
	// IndexKDTree answers nearest-seed queries from a k-d tree over the seeds.
	IndexKDTree
)

func ParseIndex(s string) (Index, error) {
	switch s {
	case "", "brute", "bruteforce":
		return IndexBruteForce, nil
	case "kdtree":
		return IndexKDTree, nil
	}
	return IndexBruteForce, fmt.Errorf("%w: unknown index %q", ErrInvalidConfiguration, s)
}

func (i Index) String() string {
	if i == IndexKDTree {
		return "kdtree"
	}
	return "brute"
}

func (i Index) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Index) UnmarshalText(text []byte) error {
	parsed, err := ParseIndex(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Assign labels each pixel with the 1-based index of its nearest seed.
// When two seeds are equally near, the one listed first wins.
func Assign(seeds []Point, width, height int) (*Mask, error) {
	if err := checkAssign(seeds, width, height); err != nil {
		return nil, err
	}

	mask := NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx, fy := float64(x), float64(y)
			minDist := math.Inf(1)
			nearest := -1
			for i, seed := range seeds {
				dx, dy := fx-seed.X, fy-seed.Y
				if dist := dx*dx + dy*dy; dist < minDist {
					minDist = dist
					nearest = i
				}
			}
			mask.Set(x, y, nearest+1)
		}
	}
	return mask, nil
}

func AssignWith(index Index, seeds []Point, width, height int) (*Mask, error) {
	if index == IndexKDTree {
		return AssignKDTree(seeds, width, height)
	}
	return Assign(seeds, width, height)
}

func checkAssign(seeds []Point, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: image is %dx%d", ErrEmptyInput, width, height)
	}
	if len(seeds) == 0 {
		return fmt.Errorf("%w: no seed points", ErrEmptyInput)
	}
	return nil
}
