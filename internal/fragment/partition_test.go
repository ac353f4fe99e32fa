package fragment

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotas(t *testing.T) {
	tests := []struct {
		fragments, pieces int
		want              []int
	}{
		{100, 8, []int{13, 13, 13, 13, 12, 12, 12, 12}},
		{4, 2, []int{2, 2}},
		{5, 5, []int{1, 1, 1, 1, 1}},
		{7, 1, []int{7}},
		{10, 3, []int{4, 3, 3}},
	}
	for _, tt := range tests {
		got, err := Quotas(tt.fragments, tt.pieces)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Quotas(%d, %d)", tt.fragments, tt.pieces)
	}
}

func TestQuotasInvalid(t *testing.T) {
	_, err := Quotas(10, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = Quotas(3, 4)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestPartition(t *testing.T) {
	t.Run("disjoint cover of all fragment ids", func(t *testing.T) {
		for _, tc := range [][2]int{{100, 8}, {4, 2}, {17, 17}, {23, 5}, {1, 1}} {
			fragments, pieces := tc[0], tc[1]
			groups, err := Partition(newTestRand(uint64(fragments*pieces)), fragments, pieces)
			require.NoError(t, err)
			require.Len(t, groups, pieces)

			quotas, err := Quotas(fragments, pieces)
			require.NoError(t, err)

			var all []int
			for i, g := range groups {
				assert.Len(t, g, quotas[i])
				all = append(all, g...)
			}
			sort.Ints(all)

			want := make([]int, fragments)
			for i := range want {
				want[i] = i + 1
			}
			if diff := cmp.Diff(want, all); diff != "" {
				t.Errorf("%d/%d: union mismatch (-want +got):\n%s", fragments, pieces, diff)
			}
		}
	})

	t.Run("groups do not share backing storage", func(t *testing.T) {
		groups, err := Partition(newTestRand(1), 6, 3)
		require.NoError(t, err)
		groups[0] = append(groups[0], 99)
		assert.NotContains(t, groups[1], 99)
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		a, err := Partition(newTestRand(9), 30, 4)
		require.NoError(t, err)
		b, err := Partition(newTestRand(9), 30, 4)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		_, err := Partition(newTestRand(1), 2, 3)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}
