package oi

import (
	"testing"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, lits ...string) []filter.Filter {
	t.Helper()
	out := make([]filter.Filter, len(lits))
	for i, s := range lits {
		f, err := filter.Parse(s)
		require.NoError(t, err)
		out[i] = f
	}
	return out
}

func bits(t *testing.T, positions ...int) bitarray.BitArray {
	t.Helper()
	m, err := bitarray.FromBits(positions)
	require.NoError(t, err)
	return m
}

// lowBits restricts every filter's constraints to bits [0, k).
func lowBits(fs []filter.Filter, k int) []filter.Filter {
	var low bitarray.BitArray
	for b := range k {
		low = low.With(b)
	}
	out := make([]filter.Filter, len(fs))
	for i, f := range fs {
		out[i] = filter.New(f.Value, f.Mask.And(low))
	}
	return out
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// graphFilters builds n filters that overlap under the full mask exactly on
// the given edges. Every other pair gets a private bit on which the lower
// index is 0 and the higher is 1.
func graphFilters(t *testing.T, n int, edges [][2]int) []filter.Filter {
	t.Helper()
	edge := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		edge[[2]int{min(e[0], e[1]), max(e[0], e[1])}] = true
	}

	out := make([]filter.Filter, n)
	b := 0
	for i := range n {
		for j := i + 1; j < n; j++ {
			if edge[[2]int{i, j}] {
				continue
			}
			require.Less(t, b, bitarray.Width, "too many independent pairs")
			out[i].Mask = out[i].Mask.With(b)
			out[j].Mask = out[j].Mask.With(b)
			out[j].Value = out[j].Value.With(b)
			b++
		}
	}
	return out
}
