package oi

import (
	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/hupe1980/tcamoi/internal/indexset"
)

// MaximalSubset greedily builds a maximal pairwise-independent subset of
// filters under mask. Filters are visited in input order and accepted when
// independent of everything accepted before them.
//
// The result is maximal, not maximum: no rejected filter can be added, but a
// larger independent subset may exist.
func MaximalSubset(filters []filter.Filter, mask bitarray.BitArray) []int {
	kept := make([]int, 0, min(len(filters), 64))
	for i := range filters {
		if independentOfAll(filters, kept, i, mask) {
			kept = append(kept, i)
		}
	}
	return kept
}

// MaximalSubsetOf is MaximalSubset restricted to indices, visited in the
// given order. The result preserves that order.
func MaximalSubsetOf(filters []filter.Filter, indices []int, mask bitarray.BitArray) ([]int, error) {
	if err := ValidateIndices(len(filters), indices); err != nil {
		return nil, err
	}
	kept := make([]int, 0, min(len(indices), 64))
	for _, i := range indices {
		if independentOfAll(filters, kept, i, mask) {
			kept = append(kept, i)
		}
	}
	return kept, nil
}

// ValidateIndices checks that indices are distinct and inside [0, n).
func ValidateIndices(n int, indices []int) error {
	seen := indexset.Get()
	defer indexset.Put(seen)

	for _, i := range indices {
		if i < 0 || i >= n {
			return &FilterIndexError{Index: i, Len: n}
		}
		if !seen.Add(i) {
			return &DuplicateFilterIndexError{Index: i}
		}
	}
	return nil
}

func independentOfAll(filters []filter.Filter, kept []int, i int, mask bitarray.BitArray) bool {
	f := filters[i]
	for _, k := range kept {
		if !filter.Independent(f, filters[k], mask) {
			return false
		}
	}
	return true
}
