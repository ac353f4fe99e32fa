package fragment

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// site is a seed point tagged with its fragment ID so the tree can be
// reordered freely during construction.
type site struct {
	x, y float64
	id   int
}

func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(site)
	if d == 0 {
		return s.x - q.x
	}
	return s.y - q.y
}

func (s site) Dims() int { return 2 }

// Distance is the squared euclidean distance, matching the brute-force scan.
func (s site) Distance(c kdtree.Comparable) float64 {
	q := c.(site)
	dx, dy := s.x-q.x, s.y-q.y
	return dx*dx + dy*dy
}

type sites []site

func (s sites) Index(i int) kdtree.Comparable         { return s[i] }
func (s sites) Len() int                              { return len(s) }
func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

func (s sites) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(sitePlane{sites: s, dim: d}, kdtree.MedianOfMedians(sitePlane{sites: s, dim: d}))
}

type sitePlane struct {
	sites
	dim kdtree.Dim
}

func (p sitePlane) Less(i, j int) bool {
	if p.dim == 0 {
		return p.sites[i].x < p.sites[j].x
	}
	return p.sites[i].y < p.sites[j].y
}

func (p sitePlane) Swap(i, j int) {
	p.sites[i], p.sites[j] = p.sites[j], p.sites[i]
}

func (p sitePlane) Slice(start, end int) kdtree.SortSlicer {
	p.sites = p.sites[start:end]
	return p
}

// AssignKDTree produces the same mask as Assign, answering each pixel's
// nearest-seed query from a k-d tree. Every seed at the nearest distance is
// collected so the lowest ID still wins ties.
func AssignKDTree(seeds []Point, width, height int) (*Mask, error) {
	if err := checkAssign(seeds, width, height); err != nil {
		return nil, err
	}

	data := make(sites, len(seeds))
	for i, p := range seeds {
		data[i] = site{x: p.X, y: p.Y, id: i + 1}
	}
	tree := kdtree.New(data, false)

	mask := NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			q := site{x: float64(x), y: float64(y)}
			nearest, dist := tree.Nearest(q)
			best := nearest.(site).id

			keeper := kdtree.NewDistKeeper(dist)
			tree.NearestSet(keeper, q)
			for _, c := range keeper.Heap {
				if c.Comparable == nil || c.Dist != dist {
					continue
				}
				if id := c.Comparable.(site).id; id < best {
					best = id
				}
			}
			mask.Set(x, y, best)
		}
	}
	return mask, nil
}
