package fragment

import (
	"fmt"
	"math"
	"math/rand/v2"
)

type Point struct {
	X, Y float64
}

// rejection sampling gives up on the spacing constraint after this many
// attempts per missing point, so the fill loop always terminates
const maxAttemptsPerPoint = 1000

// GenerateSeeds places exactly n seed points inside a width x height image.
// One jittered point goes into each cell of a ceil(sqrt(n)) square grid; any
// shortfall is topped up with uniformly random points that keep at least half
// the estimated minimum spacing from the points already placed.
func GenerateSeeds(rng *rand.Rand, width, height, n int) ([]Point, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrEmptyInput, width, height)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d seed points requested", ErrEmptyInput, n)
	}

	w, h := float64(width), float64(height)
	minDistance := math.Sqrt((w * h) / float64(n*2))
	jitter := minDistance * 0.5

	gridSize := int(math.Ceil(math.Sqrt(float64(n))))
	cellWidth := w / float64(gridSize)
	cellHeight := h / float64(gridSize)

	points := make([]Point, 0, n)
	for gy := 0; gy < gridSize && len(points) < n; gy++ {
		for gx := 0; gx < gridSize && len(points) < n; gx++ {
			px := float64(gx)*cellWidth + rng.Float64()*cellWidth
			py := float64(gy)*cellHeight + rng.Float64()*cellHeight

			jx := (rng.Float64()*2 - 1) * jitter
			jy := (rng.Float64()*2 - 1) * jitter

			points = append(points, Point{
				X: clamp(px+jx, 0, w-1),
				Y: clamp(py+jy, 0, h-1),
			})
		}
	}

	return fillSeeds(rng, points, w, h, n, minDistance*0.5), nil
}

func fillSeeds(rng *rand.Rand, points []Point, w, h float64, n int, spacing float64) []Point {
	budget := (n - len(points)) * maxAttemptsPerPoint
	for len(points) < n {
		candidate := Point{X: rng.Float64() * w, Y: rng.Float64() * h}
		if budget > 0 && tooClose(points, candidate, spacing) {
			budget--
			continue
		}
		points = append(points, candidate)
	}
	return points[:n]
}

func tooClose(points []Point, p Point, spacing float64) bool {
	limit := spacing * spacing
	for _, q := range points {
		dx, dy := p.X-q.X, p.Y-q.Y
		if dx*dx+dy*dy < limit {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
