package oi

import (
	"testing"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaximalSubset(t *testing.T) {
	full := bitarray.Full()

	tests := []struct {
		name string
		lits []string
		mask bitarray.BitArray
		want []int
	}{
		{"empty", nil, full, []int{}},
		{"single", []string{"1*"}, full, []int{0}},
		{"three overlapping keeps first", []string{"1*", "*1", "11"}, full, []int{0}},
		{"zero mask keeps first", []string{"0", "1", "10"}, bitarray.BitArray{}, []int{0}},
		{"disjoint", []string{"00", "01", "10", "11"}, full, []int{0, 1, 2, 3}},
		{"greedy order", []string{"0*", "00", "01", "1*"}, full, []int{0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaximalSubset(parseAll(t, tt.lits...), tt.mask)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaximalSubset_Properties(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for range 20 {
		fs := rng.ClusteredFilters(60, 4, 10)
		mask := rng.Mask(24)

		stay := MaximalSubset(fs, mask)
		require.True(t, testutil.PairwiseIndependent(fs, stay, mask))

		kept := make(map[int]bool, len(stay))
		for _, i := range stay {
			kept[i] = true
		}
		for i := range fs {
			if !kept[i] {
				assert.True(t, testutil.Blocked(fs, stay, i, mask), "filter %d could be added", i)
			}
		}
	}
}

func TestMaximalSubsetOf(t *testing.T) {
	fs := parseAll(t, "0*", "00", "01", "1*")
	full := bitarray.Full()

	got, err := MaximalSubsetOf(fs, []int{2, 1, 0}, full)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, got, "visits indices in the given order")

	got, err = MaximalSubsetOf(fs, []int{}, full)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = MaximalSubsetOf(fs, []int{0, 4}, full)
	require.ErrorIs(t, err, ErrFilterIndex)
	var fe *FilterIndexError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 4, fe.Index)
	assert.Equal(t, 4, fe.Len)

	_, err = MaximalSubsetOf(fs, []int{-1}, full)
	require.ErrorIs(t, err, ErrFilterIndex)

	_, err = MaximalSubsetOf(fs, []int{1, 3, 1}, full)
	require.ErrorIs(t, err, ErrDuplicateFilterIndex)
	var de *DuplicateFilterIndexError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Index)
}

func TestMaximalSubsetOf_StaysInsideIndices(t *testing.T) {
	rng := testutil.NewRNG(7)
	fs := rng.Filters(80, 0.1)
	mask := rng.Mask(40)

	for range 10 {
		idx := rng.Bits(30)
		for k := range idx {
			idx[k] %= len(fs)
		}
		idx = dedupe(idx)

		got, err := MaximalSubsetOf(fs, idx, mask)
		require.NoError(t, err)
		assert.Subset(t, idx, got)
		assert.True(t, testutil.PairwiseIndependent(fs, got, mask))
	}
}

func dedupe(s []int) []int {
	seen := make(map[int]bool, len(s))
	out := s[:0]
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
