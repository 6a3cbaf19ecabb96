package oi

import (
	"slices"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/hupe1980/tcamoi/internal/indexset"
)

// MaxExactFilters is the largest input the exact searches accept. Pair ids
// i*n+j must fit in 32 bits.
const MaxExactFilters = 1 << 16

// pairCount returns n*(n-1)/2.
func pairCount(n int) int64 {
	return int64(n) * int64(n-1) / 2
}

// ExactBits finds l bits minimising the indistinguishable pair count by
// branch and bound.
//
// Every bit gets a separation profile, the set of pairs it distinguishes.
// Bits with empty profiles, or whose profile is contained in another bit's
// (equal profiles keep the lowest position), can always be swapped for a bit
// that does at least as well and are dropped. The surviving candidates are
// enumerated in lexicographic order; the first combination with the best
// coverage wins, which keeps the result deterministic.
//
// Building the profiles charges one op per pair, each search node one more.
func ExactBits(filters []filter.Filter, l int, cfg Config) ([]int, error) {
	if err := ValidateL(l); err != nil {
		return nil, err
	}
	n := len(filters)
	if n > MaxExactFilters {
		return nil, &TooManyFiltersError{N: n, Max: MaxExactFilters}
	}
	if l == 0 {
		return []int{}, nil
	}

	cfg.Budget.SetPhase("exact-bits")
	if err := cfg.Budget.Charge(pairCount(n)); err != nil {
		return nil, err
	}

	profiles := separationProfiles(filters)
	cands := candidateBits(&profiles)

	var chosen []int
	if len(cands) <= l {
		chosen = cands
	} else {
		s := &bitSearch{
			cfg:      cfg,
			l:        l,
			cands:    cands,
			profiles: &profiles,
			best:     -1,
		}
		s.suffix = make([]*indexset.Set, len(cands)+1)
		s.suffix[len(cands)] = indexset.New()
		for k := len(cands) - 1; k >= 0; k-- {
			s.suffix[k] = indexset.Union(s.suffix[k+1], profiles[cands[k]])
		}
		s.reachable = s.suffix[0].Len()

		cover := indexset.New()
		if err := s.run(0, make([]int, 0, l), cover); err != nil {
			return nil, err
		}
		chosen = s.bestBits
	}

	var mask bitarray.BitArray
	for _, b := range chosen {
		mask = mask.With(b)
	}
	out := padBits(slices.Clone(chosen), mask, l)
	slices.Sort(out)
	return out, nil
}

// separationProfiles maps every bit to the ids i*n+j of the pairs i<j it
// distinguishes.
func separationProfiles(filters []filter.Filter) [bitarray.Width]*indexset.Set {
	n := len(filters)
	var profiles [bitarray.Width]*indexset.Set
	for b := range profiles {
		profiles[b] = indexset.New()
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			id := i*n + j
			filter.Distinguishing(filters[i], filters[j]).ForEach(func(b int) bool {
				profiles[b].Add(id)
				return true
			})
		}
	}
	return profiles
}

// candidateBits drops bits with empty or dominated profiles.
func candidateBits(profiles *[bitarray.Width]*indexset.Set) []int {
	var cands []int
	for b, pb := range profiles {
		if pb.IsEmpty() {
			continue
		}
		dominated := false
		for c, pc := range profiles {
			if c == b || pc.IsEmpty() || !pb.SubsetOf(pc) {
				continue
			}
			if !pc.SubsetOf(pb) || c < b {
				dominated = true
				break
			}
		}
		if !dominated {
			cands = append(cands, b)
		}
	}
	return cands
}

type bitSearch struct {
	cfg       Config
	l         int
	cands     []int
	profiles  *[bitarray.Width]*indexset.Set
	suffix    []*indexset.Set
	reachable int

	best     int
	bestBits []int
}

func (s *bitSearch) run(start int, chosen []int, cover *indexset.Set) error {
	if err := s.cfg.Budget.Charge(1); err != nil {
		return err
	}
	if len(chosen) == s.l {
		if c := cover.Len(); c > s.best {
			s.best = c
			s.bestBits = slices.Clone(chosen)
		}
		return nil
	}

	need := s.l - len(chosen)
	for k := start; k <= len(s.cands)-need; k++ {
		// suffix[k] only shrinks as k grows, so once the bound fails it
		// fails for the rest of the loop too.
		if cover.OrLen(s.suffix[k]) <= s.best {
			return nil
		}

		next := indexset.Get()
		next.CopyFrom(cover)
		next.Or(s.profiles[s.cands[k]])
		err := s.run(k+1, append(chosen, s.cands[k]), next)
		indexset.Put(next)
		if err != nil {
			return err
		}
		if s.best == s.reachable {
			return nil
		}
	}
	return nil
}

// MaximumSubset finds a maximum pairwise-independent subset under mask by
// branch and bound, seeded with the greedy MaximalSubset. Only strictly
// larger subsets replace the seed, so when the greedy answer is already
// optimal it is returned unchanged. The result is sorted ascending.
//
// Building the conflict sets charges one op per pair, each search node one
// more.
func MaximumSubset(filters []filter.Filter, mask bitarray.BitArray, cfg Config) ([]int, error) {
	n := len(filters)
	if n > MaxExactFilters {
		return nil, &TooManyFiltersError{N: n, Max: MaxExactFilters}
	}
	if n == 0 {
		return []int{}, nil
	}

	cfg.Budget.SetPhase("exact-subset")
	if err := cfg.Budget.Charge(pairCount(n)); err != nil {
		return nil, err
	}

	conflicts := make([]*indexset.Set, n)
	for i := range conflicts {
		conflicts[i] = indexset.New()
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			if filter.Overlaps(filters[i], filters[j], mask) {
				conflicts[i].Add(j)
				conflicts[j].Add(i)
			}
		}
	}

	s := &subsetSearch{
		cfg:       cfg,
		conflicts: conflicts,
		best:      MaximalSubset(filters, mask),
	}
	if err := s.run(make([]int, 0, n), indexset.Range(n)); err != nil {
		return nil, err
	}

	return sortedCopy(s.best), nil
}

type subsetSearch struct {
	cfg       Config
	conflicts []*indexset.Set
	best      []int
}

func (s *subsetSearch) run(cur []int, cand *indexset.Set) error {
	if err := s.cfg.Budget.Charge(1); err != nil {
		return err
	}
	if cand.IsEmpty() {
		if len(cur) > len(s.best) {
			s.best = slices.Clone(cur)
		}
		return nil
	}
	if len(cur)+cand.Len() <= len(s.best) {
		return nil
	}

	v := cand.Min()

	inc := indexset.Get()
	inc.CopyFrom(cand)
	inc.Remove(v)
	inc.AndNot(s.conflicts[v])
	err := s.run(append(cur, v), inc)
	indexset.Put(inc)
	if err != nil {
		return err
	}

	// A filter with no remaining conflicts belongs in every maximum subset
	// of cand, so excluding it cannot help.
	if !s.conflicts[v].Intersects(cand) {
		return nil
	}

	exc := indexset.Get()
	exc.CopyFrom(cand)
	exc.Remove(v)
	err = s.run(cur, exc)
	indexset.Put(exc)
	return err
}
