package oi

import (
	"github.com/hupe1980/tcamoi/filter"
)

// Group is a set of filters that are pairwise independent under Bits.
type Group struct {
	// Bits are the key bits chosen for this group, ascending.
	Bits []int
	// Indices point into the original filter list, ascending.
	Indices []int
}

// MinimizeGroups splits filters into groups by running Select repeatedly:
// each round's stay forms a group and its discard feeds the next round.
// maxGroups caps the number of groups (0 means no cap); filters left over
// when the cap is reached are returned as residual, ascending.
func MinimizeGroups(s Strategy, filters []filter.Filter, l int, mode Mode, maxGroups int, cfg Config) ([]Group, []int, error) {
	if err := ValidateL(l); err != nil {
		return nil, nil, err
	}
	if !mode.Valid() {
		return nil, nil, &InvalidModeError{Mode: mode}
	}

	remaining := make([]int, len(filters))
	for i := range remaining {
		remaining[i] = i
	}

	groups := []Group{}
	sub := make([]filter.Filter, 0, len(filters))
	for len(remaining) > 0 && (maxGroups <= 0 || len(groups) < maxGroups) {
		sub = sub[:0]
		for _, i := range remaining {
			sub = append(sub, filters[i])
		}

		sel, err := Select(s, sub, l, mode, cfg)
		if err != nil {
			return nil, nil, err
		}
		if len(sel.Stay) == 0 {
			break
		}

		// remaining is ascending and Stay is ascending, so the mapped
		// indices stay ascending.
		indices := make([]int, len(sel.Stay))
		for k, j := range sel.Stay {
			indices[k] = remaining[j]
		}
		groups = append(groups, Group{Bits: sel.Bits, Indices: indices})

		next := make([]int, len(sel.Discard))
		for k, j := range sel.Discard {
			next[k] = remaining[j]
		}
		remaining = sortedCopy(next)
	}

	return groups, remaining, nil
}
