package oi

import (
	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/hupe1980/tcamoi/internal/indexset"
)

// GreedyBlockers removes the most conflicting filters until the rest are
// pairwise independent under mask.
//
// Each round discards the alive filter with the most conflicts among alive
// filters, ties going to the highest index so earlier filters tend to stay.
// A final pass walks the discarded filters in reverse order and readmits any
// that no longer conflict with what stayed, which makes stay maximal.
//
// Stay is ascending. Discard is in removal order, most conflicting first.
func GreedyBlockers(filters []filter.Filter, mask bitarray.BitArray) (stay, discard []int) {
	n := len(filters)
	degree := make([]int, n)
	edges := 0
	for i := range n {
		for j := i + 1; j < n; j++ {
			if filter.Overlaps(filters[i], filters[j], mask) {
				degree[i]++
				degree[j]++
				edges++
			}
		}
	}

	alive := indexset.Range(n)
	var removed []int
	for edges > 0 {
		v := -1
		alive.ForEach(func(i int) bool {
			if v < 0 || degree[i] >= degree[v] {
				v = i
			}
			return true
		})

		alive.Remove(v)
		removed = append(removed, v)
		alive.ForEach(func(u int) bool {
			if filter.Overlaps(filters[u], filters[v], mask) {
				degree[u]--
				edges--
			}
			return true
		})
		degree[v] = 0
	}

	readmitted := indexset.Get()
	defer indexset.Put(readmitted)
	for k := len(removed) - 1; k >= 0; k-- {
		v := removed[k]
		ok := true
		alive.ForEach(func(u int) bool {
			ok = filter.Independent(filters[u], filters[v], mask)
			return ok
		})
		if ok {
			alive.Add(v)
			readmitted.Add(v)
		}
	}

	discard = make([]int, 0, len(removed)-readmitted.Len())
	for _, v := range removed {
		if !readmitted.Contains(v) {
			discard = append(discard, v)
		}
	}
	return alive.Ints(), discard
}
