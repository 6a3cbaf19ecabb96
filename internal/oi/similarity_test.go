package oi

import (
	"slices"
	"testing"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/hupe1980/tcamoi/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndistinguishablePairs(t *testing.T) {
	fs := parseAll(t, "0*1", "1*0", "0*0")

	assert.Equal(t, 3, IndistinguishablePairs(fs, bitarray.BitArray{}, Config{}))
	assert.Equal(t, 1, IndistinguishablePairs(fs, bits(t, 0), Config{}))
	assert.Equal(t, 1, IndistinguishablePairs(fs, bits(t, 2), Config{}))
	assert.Equal(t, 0, IndistinguishablePairs(fs, bits(t, 0, 2), Config{}))
	assert.Equal(t, 0, IndistinguishablePairs(nil, bitarray.Full(), Config{}))
}

func TestIndistinguishablePairs_ParallelMatchesSerial(t *testing.T) {
	rng := testutil.NewRNG(4711)
	fs := rng.ClusteredFilters(500, 8, 12)
	mask := rng.Mask(30)

	serial := IndistinguishablePairs(fs, mask, Config{Workers: 1})
	parallel := IndistinguishablePairs(fs, mask, Config{Workers: 8})
	assert.Equal(t, serial, parallel)
}

func TestGreedyBits(t *testing.T) {
	// Bits 0 and 2 each separate two pairs; bit 1 separates nothing.
	fs := parseAll(t, "0*1", "1*0", "0*0")

	tests := []struct {
		l    int
		want []int
	}{
		{0, []int{}},
		{1, []int{0}},
		{2, []int{0, 2}},
		{3, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		got, err := GreedyBits(fs, tt.l, Config{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "l=%d", tt.l)
	}
}

func TestGreedyBits_InvalidL(t *testing.T) {
	fs := parseAll(t, "0", "1")

	for _, l := range []int{-1, bitarray.Width + 1} {
		_, err := GreedyBits(fs, l, Config{})
		require.ErrorIs(t, err, ErrInvalidL)

		var le *InvalidLError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, l, le.L)
	}
}

func TestGreedyBits_FullWidthSeparatesDistinctFilters(t *testing.T) {
	rng := testutil.NewRNG(11)
	fs := rng.Filters(40, 1)

	got, err := GreedyBits(fs, bitarray.Width, Config{Workers: 4})
	require.NoError(t, err)
	require.Len(t, got, bitarray.Width)

	mask, err := bitarray.FromBits(got)
	require.NoError(t, err)
	assert.Equal(t, bitarray.Full(), mask)
	assert.Equal(t, 0, IndistinguishablePairs(fs, mask, Config{}))
}

func TestGreedyBits_Properties(t *testing.T) {
	rng := testutil.NewRNG(99)

	for range 10 {
		fs := rng.ClusteredFilters(200, 5, 16)
		l := 1 + rng.Intn(20)

		serial, err := GreedyBits(fs, l, Config{Workers: 1})
		require.NoError(t, err)
		parallel, err := GreedyBits(fs, l, Config{Workers: 8})
		require.NoError(t, err)
		assert.Equal(t, serial, parallel, "deterministic across worker counts")

		assert.Len(t, serial, l)
		assert.IsIncreasing(t, serial)
	}
}

// rescanGreedyBits scores every pair from scratch each round.
func rescanGreedyBits(fs []filter.Filter, l int) []int {
	var chosen bitarray.BitArray
	out := make([]int, 0, l)
	for len(out) < l {
		var gains [bitarray.Width]int64
		for i := range fs {
			for j := i + 1; j < len(fs); j++ {
				d := filter.Distinguishing(fs[i], fs[j])
				if !d.And(chosen).IsZero() {
					continue
				}
				for _, b := range d.Ones() {
					gains[b]++
				}
			}
		}
		best, bestGain := -1, int64(0)
		for b := range bitarray.Width {
			if !chosen.Bit(b) && gains[b] > bestGain {
				best, bestGain = b, gains[b]
			}
		}
		if best < 0 {
			break
		}
		chosen = chosen.With(best)
		out = append(out, best)
	}
	out = padBits(out, chosen, l)
	slices.Sort(out)
	return out
}

func TestGreedyBits_MatchesFullRescan(t *testing.T) {
	rng := testutil.NewRNG(2024)

	for round := range 4 {
		fs := rng.ClusteredFilters(300, 6, 20)
		l := 8 + rng.Intn(40)
		want := rescanGreedyBits(fs, l)

		for _, workers := range []int{1, 2, 4, 7} {
			got, err := GreedyBits(fs, l, Config{Workers: workers})
			require.NoError(t, err)
			assert.Equal(t, want, got, "round=%d workers=%d l=%d", round, workers, l)
		}
	}
}

func TestGreedyBits_StopsWhenAllPairsSeparated(t *testing.T) {
	// Bit 0 separates every separable pair; the rest is padding.
	fs := parseAll(t, "0", "1", "1*1")
	want := rescanGreedyBits(fs, 4)

	got, err := GreedyBits(fs, 4, Config{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestSeparate(t *testing.T) {
	fs := parseAll(t, "0*1", "1*0", "0*0")

	rows, gains := pendingPairs(fs, 1)
	assert.Equal(t, int64(2), gains[0])
	assert.Equal(t, int64(0), gains[1])
	assert.Equal(t, int64(2), gains[2])

	gains = separate(rows, 0, 1)
	assert.Equal(t, int64(0), gains[0])
	assert.Equal(t, int64(1), gains[2])
	assert.Len(t, rows[0], 1)
	assert.Empty(t, rows[1])

	gains = separate(rows, 2, 1)
	assert.Equal(t, [bitarray.Width]int64{}, gains)
	for _, r := range rows {
		assert.Empty(t, r)
	}
}
