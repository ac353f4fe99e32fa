package fragment

import (
	"fmt"
	"math/rand/v2"
)

// Quotas returns how many fragments each of the pieces receives: an equal
// share, with the first fragments%pieces pieces taking one extra.
func Quotas(fragments, pieces int) ([]int, error) {
	if err := validateCounts(pieces, fragments); err != nil {
		return nil, err
	}

	quotas := make([]int, pieces)
	per, remaining := fragments/pieces, fragments%pieces
	for i := range quotas {
		quotas[i] = per
		if remaining > 0 {
			quotas[i]++
			remaining--
		}
	}
	return quotas, nil
}

// Partition shuffles the fragment IDs 1..fragments and deals them out in
// order, filling each piece's quota before moving on to the next.
func Partition(rng *rand.Rand, fragments, pieces int) ([][]int, error) {
	quotas, err := Quotas(fragments, pieces)
	if err != nil {
		return nil, err
	}

	ids := make([]int, fragments)
	for i := range ids {
		ids[i] = i + 1
	}
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	groups := make([][]int, pieces)
	next := 0
	for i, quota := range quotas {
		groups[i] = ids[next : next+quota : next+quota]
		next += quota
	}
	return groups, nil
}

func validateCounts(pieces, fragments int) error {
	if pieces < 1 {
		return fmt.Errorf("%w: pieces must be at least 1, got %d", ErrInvalidConfiguration, pieces)
	}
	if fragments < pieces {
		return fmt.Errorf("%w: fragments (%d) must be at least pieces (%d)", ErrInvalidConfiguration, fragments, pieces)
	}
	return nil
}
