package oi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
)

// Mode selects how Select decides which filters stay.
type Mode int

const (
	// MaxOI keeps the largest independent subset the strategy can find.
	MaxOI Mode = iota
	// Blockers discards the filters responsible for conflicts.
	Blockers
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case MaxOI:
		return "max-oi"
	case Blockers:
		return "blockers"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == MaxOI || m == Blockers
}

// ParseMode accepts "max-oi", "maxoi", "max_oi" and "blockers" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "max-oi", "maxoi":
		return MaxOI, nil
	case "blockers":
		return Blockers, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Strategy is one way of picking bits and retained filters.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string

	// SelectBits returns l bit positions, ascending.
	SelectBits(filters []filter.Filter, l int, cfg Config) ([]int, error)

	// Retain partitions the filter indices into stay and discard under mask.
	Retain(filters []filter.Filter, mask bitarray.BitArray, mode Mode, cfg Config) (stay, discard []int, err error)
}

// Greedy is the fast heuristic strategy. It never fails on valid input and
// ignores the budget.
type Greedy struct{}

// Name implements Strategy.
func (Greedy) Name() string { return "greedy" }

// SelectBits implements Strategy.
func (Greedy) SelectBits(filters []filter.Filter, l int, cfg Config) ([]int, error) {
	return GreedyBits(filters, l, cfg)
}

// Retain implements Strategy.
func (Greedy) Retain(filters []filter.Filter, mask bitarray.BitArray, mode Mode, _ Config) ([]int, []int, error) {
	switch mode {
	case MaxOI:
		stay := MaximalSubset(filters, mask)
		return stay, complement(len(filters), stay), nil
	case Blockers:
		stay, discard := GreedyBlockers(filters, mask)
		return stay, discard, nil
	default:
		return nil, nil, &InvalidModeError{Mode: mode}
	}
}

// Exact is the exhaustive strategy. Its searches are bounded by cfg.Budget
// and fail with the budget's error instead of approximating.
type Exact struct{}

// Name implements Strategy.
func (Exact) Name() string { return "exact" }

// SelectBits implements Strategy.
func (Exact) SelectBits(filters []filter.Filter, l int, cfg Config) ([]int, error) {
	return ExactBits(filters, l, cfg)
}

// Retain implements Strategy. Both modes compute a maximum independent
// subset; in Blockers mode its complement is the minimum blocker set.
func (Exact) Retain(filters []filter.Filter, mask bitarray.BitArray, mode Mode, cfg Config) ([]int, []int, error) {
	if !mode.Valid() {
		return nil, nil, &InvalidModeError{Mode: mode}
	}
	stay, err := MaximumSubset(filters, mask, cfg)
	if err != nil {
		return nil, nil, err
	}
	return stay, complement(len(filters), stay), nil
}

// StrategyFor returns Exact when onlyExact is set, Greedy otherwise.
func StrategyFor(onlyExact bool) Strategy {
	if onlyExact {
		return Exact{}
	}
	return Greedy{}
}

// Selection is the outcome of Select.
type Selection struct {
	Bits    []int
	Stay    []int
	Discard []int
}

// Select picks l bits with s, builds their mask and partitions filters into
// stay and discard under it. An empty table still gets the l bits SelectBits
// returns for it. Stay is ascending. Discard is ascending except
// for greedy Blockers, which reports it in removal order.
func Select(s Strategy, filters []filter.Filter, l int, mode Mode, cfg Config) (Selection, error) {
	if err := ValidateL(l); err != nil {
		return Selection{}, err
	}
	if !mode.Valid() {
		return Selection{}, &InvalidModeError{Mode: mode}
	}
	if len(filters) == 0 {
		bits, err := s.SelectBits(filters, l, cfg)
		if err != nil {
			return Selection{}, err
		}
		return Selection{Bits: bits, Stay: []int{}, Discard: []int{}}, nil
	}

	bits, err := s.SelectBits(filters, l, cfg)
	if err != nil {
		return Selection{}, err
	}
	mask, err := bitarray.FromBits(bits)
	if err != nil {
		return Selection{}, err
	}
	stay, discard, err := s.Retain(filters, mask, mode, cfg)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Bits: bits, Stay: stay, Discard: discard}, nil
}

// complement returns [0, n) minus sorted, ascending.
func complement(n int, sorted []int) []int {
	out := make([]int, 0, n-len(sorted))
	k := 0
	for i := range n {
		if k < len(sorted) && sorted[k] == i {
			k++
			continue
		}
		out = append(out, i)
	}
	return out
}

// sortedCopy returns an ascending copy of s.
func sortedCopy(s []int) []int {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}
