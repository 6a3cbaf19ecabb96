package oi

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/hupe1980/tcamoi/internal/resource"
)

// serialThreshold is the filter count below which pair scans stay on the
// calling goroutine.
const serialThreshold = 128

// Config carries per-call execution settings.
type Config struct {
	// Workers bounds the goroutines used for pair scans. Values <= 1 scan
	// serially.
	Workers int

	// Budget bounds the exact strategy. Nil means unlimited.
	Budget *resource.Budget
}

// IndistinguishablePairs counts unordered pairs that are not independent
// under mask.
func IndistinguishablePairs(filters []filter.Filter, mask bitarray.BitArray, cfg Config) int {
	counts := make([]int, max(cfg.Workers, 1))
	scanRows(len(filters), cfg.Workers, func(w, i int) {
		fi := filters[i]
		for j := i + 1; j < len(filters); j++ {
			if !filter.Independent(fi, filters[j], mask) {
				counts[w]++
			}
		}
	})
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// GreedyBits picks l bits one at a time, each round taking the bit that
// separates the most pairs still indistinguishable under the bits picked so
// far. Ties go to the lowest position. When no bit separates anything the
// remaining slots are filled with the lowest unpicked positions.
//
// The first round records the distinguishing bits of every pair that some
// bit can separate. Later rounds drop the pairs the last pick separated and
// score only what is left, so a round costs O(unseparated pairs).
//
// The result is sorted ascending. It is not guaranteed to minimise the final
// indistinguishable pair count; see ExactBits for that.
func GreedyBits(filters []filter.Filter, l int, cfg Config) ([]int, error) {
	if err := ValidateL(l); err != nil {
		return nil, err
	}

	var chosen bitarray.BitArray
	out := make([]int, 0, l)
	if l > 0 {
		rows, gains := pendingPairs(filters, cfg.Workers)
		for len(out) < l {
			best, bestGain := -1, int64(0)
			for i := range bitarray.Width {
				if !chosen.Bit(i) && gains[i] > bestGain {
					best, bestGain = i, gains[i]
				}
			}
			if best < 0 {
				break
			}
			chosen = chosen.With(best)
			out = append(out, best)
			if len(out) < l {
				gains = separate(rows, best, cfg.Workers)
			}
		}
	}

	out = padBits(out, chosen, l)
	slices.Sort(out)
	return out, nil
}

// pendingPairs returns, per row i, the distinguishing bits of every pair
// (i, j>i) that at least one bit separates, together with the per-bit
// counts over all of them.
func pendingPairs(filters []filter.Filter, workers int) ([][]bitarray.BitArray, [bitarray.Width]int64) {
	rows := make([][]bitarray.BitArray, len(filters))
	local := make([][bitarray.Width]int64, max(workers, 1))
	scanRows(len(filters), workers, func(w, i int) {
		fi := filters[i]
		acc := &local[w]
		var row []bitarray.BitArray
		for j := i + 1; j < len(filters); j++ {
			d := filter.Distinguishing(fi, filters[j])
			if d.IsZero() {
				continue
			}
			row = append(row, d)
			addBits(acc, d)
		}
		rows[i] = row
	})
	return rows, sumGains(local)
}

// separate removes the pairs bit distinguishes from rows, in place, and
// counts per bit what remains.
func separate(rows [][]bitarray.BitArray, bit, workers int) [bitarray.Width]int64 {
	local := make([][bitarray.Width]int64, max(workers, 1))
	scanRows(len(rows), workers, func(w, i int) {
		acc := &local[w]
		kept := rows[i][:0]
		for _, d := range rows[i] {
			if d.Bit(bit) {
				continue
			}
			kept = append(kept, d)
			addBits(acc, d)
		}
		if len(kept) == 0 {
			kept = nil
		}
		rows[i] = kept
	})
	return sumGains(local)
}

func addBits(acc *[bitarray.Width]int64, d bitarray.BitArray) {
	d.ForEach(func(b int) bool {
		acc[b]++
		return true
	})
}

func sumGains(local [][bitarray.Width]int64) [bitarray.Width]int64 {
	var total [bitarray.Width]int64
	for _, acc := range local {
		for b, c := range acc {
			total[b] += c
		}
	}
	return total
}

// padBits appends the lowest positions missing from chosen until out has l
// entries.
func padBits(out []int, chosen bitarray.BitArray, l int) []int {
	for i := 0; len(out) < l && i < bitarray.Width; i++ {
		if !chosen.Bit(i) {
			chosen = chosen.With(i)
			out = append(out, i)
		}
	}
	return out
}

// scanRows calls fn(w, i) for every row i in [0, n), where w identifies the
// worker in [0, workers). Rows are striped across workers so that the
// triangular i<j scans stay balanced.
func scanRows(n, workers int, fn func(w, i int)) {
	if workers <= 1 || n < serialThreshold {
		for i := range n {
			fn(0, i)
		}
		return
	}

	workers = min(workers, n)
	var g errgroup.Group
	g.SetLimit(workers)
	for w := range workers {
		g.Go(func() error {
			for i := w; i < n; i += workers {
				fn(w, i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
