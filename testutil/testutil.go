package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// BitArray returns an array where each bit is set with probability p.
func (r *RNG) BitArray(p float64) bitarray.BitArray {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bitArrayLocked(p)
}

func (r *RNG) bitArrayLocked(p float64) bitarray.BitArray {
	var b bitarray.BitArray
	for i := range bitarray.Width {
		if r.rand.Float64() < p {
			b = b.With(i)
		}
	}
	return b
}

// Filter returns a filter where each bit is constrained with probability
// care and constrained bits take uniform values.
func (r *RNG) Filter(care float64) filter.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filterLocked(care)
}

func (r *RNG) filterLocked(care float64) filter.Filter {
	return filter.New(r.bitArrayLocked(0.5), r.bitArrayLocked(care))
}

// Filters generates num filters with Filter(care).
// Locks only once per call.
func (r *RNG) Filters(num int, care float64) []filter.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]filter.Filter, num)
	for i := range out {
		out[i] = r.filterLocked(care)
	}
	return out
}

// ClusteredFilters generates num filters spread over the given number of
// clusters. Filters in a cluster share a fully constrained prefix; the
// following free bits are constrained with probability one half, so
// filters of one cluster overlap often and filters of different clusters
// are usually independent on the prefix.
func (r *RNG) ClusteredFilters(num, clusters, free int) []filter.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()

	free = min(max(free, 0), bitarray.Width)
	prefix := bitarray.Width - free

	centers := make([]bitarray.BitArray, clusters)
	for c := range centers {
		centers[c] = r.bitArrayLocked(0.5)
	}

	out := make([]filter.Filter, num)
	for i := range out {
		value := centers[r.rand.Intn(clusters)]
		var mask bitarray.BitArray
		for b := range prefix {
			mask = mask.With(b)
		}
		for b := prefix; b < bitarray.Width; b++ {
			if r.rand.Intn(2) == 0 {
				mask = mask.With(b)
			}
			if r.rand.Intn(2) == 0 {
				value = value.Xor(bitarray.BitArray{}.With(b))
			}
		}
		out[i] = filter.New(value, mask)
	}
	return out
}

// Bits returns k distinct bit positions in random order.
func (r *RNG) Bits(k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	k = min(max(k, 0), bitarray.Width)
	return r.rand.Perm(bitarray.Width)[:k]
}

// Mask returns a mask with k distinct random bits set.
func (r *RNG) Mask(k int) bitarray.BitArray {
	var m bitarray.BitArray
	for _, b := range r.Bits(k) {
		m = m.With(b)
	}
	return m
}

// PairwiseIndependent reports whether the filters at indices are pairwise
// independent under mask.
func PairwiseIndependent(filters []filter.Filter, indices []int, mask bitarray.BitArray) bool {
	for a := range indices {
		for b := a + 1; b < len(indices); b++ {
			if filter.Overlaps(filters[indices[a]], filters[indices[b]], mask) {
				return false
			}
		}
	}
	return true
}

// Blocked reports whether the filter at i overlaps at least one filter at
// indices under mask.
func Blocked(filters []filter.Filter, indices []int, i int, mask bitarray.BitArray) bool {
	for _, k := range indices {
		if filter.Overlaps(filters[i], filters[k], mask) {
			return true
		}
	}
	return false
}

// IsPartition reports whether a and b together list every index in [0, n)
// exactly once.
func IsPartition(n int, a, b []int) bool {
	if len(a)+len(b) != n {
		return false
	}
	seen := make([]bool, n)
	for _, part := range [][]int{a, b} {
		for _, i := range part {
			if i < 0 || i >= n || seen[i] {
				return false
			}
			seen[i] = true
		}
	}
	return true
}

// BruteForceMaximum returns the size of a maximum independent subset under
// mask by trying every subset. Only for small n.
func BruteForceMaximum(filters []filter.Filter, mask bitarray.BitArray) int {
	n := len(filters)
	best := 0
	idx := make([]int, 0, n)
	for set := uint64(0); set < 1<<n; set++ {
		idx = idx[:0]
		for i := range n {
			if set&(1<<i) != 0 {
				idx = append(idx, i)
			}
		}
		if len(idx) > best && PairwiseIndependent(filters, idx, mask) {
			best = len(idx)
		}
	}
	return best
}

// BruteForcePairs returns the smallest indistinguishable pair count over
// every l-bit subset of candidates. Only for small candidate lists.
func BruteForcePairs(filters []filter.Filter, candidates []int, l int) int {
	best := -1
	var rec func(start int, mask bitarray.BitArray, left int)
	rec = func(start int, mask bitarray.BitArray, left int) {
		if left == 0 {
			c := countPairs(filters, mask)
			if best < 0 || c < best {
				best = c
			}
			return
		}
		for k := start; k <= len(candidates)-left; k++ {
			rec(k+1, mask.With(candidates[k]), left-1)
		}
	}
	rec(0, bitarray.BitArray{}, l)
	return best
}

func countPairs(filters []filter.Filter, mask bitarray.BitArray) int {
	c := 0
	for i := range filters {
		for j := i + 1; j < len(filters); j++ {
			if filter.Overlaps(filters[i], filters[j], mask) {
				c++
			}
		}
	}
	return c
}
