package tcamoi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/filter"
	"github.com/hupe1980/tcamoi/internal/oi"
)

// Width is the number of match bits in every filter.
const Width = bitarray.Width

type (
	// BitArray is a fixed-width set of Width bits.
	BitArray = bitarray.BitArray
	// Filter is a ternary match rule. Mask bit 1 means the value bit is
	// significant, 0 means wildcard.
	Filter = filter.Filter
	// Mode selects how the selectors decide which filters stay.
	Mode = oi.Mode
)

const (
	// MaxOI keeps the largest independent subset the strategy can find.
	MaxOI = oi.MaxOI
	// Blockers discards the filters responsible for conflicts.
	Blockers = oi.Blockers
)

// ParseMode parses "max-oi" or "blockers".
func ParseMode(s string) (Mode, error) {
	m, err := oi.ParseMode(s)
	return m, translateError(err)
}

// Strategy selects between the greedy heuristics and the exhaustive search.
type Strategy int

const (
	// StrategyGreedy is fast and deterministic but not guaranteed optimal.
	StrategyGreedy Strategy = iota
	// StrategyExact searches exhaustively within the configured budget and
	// fails rather than approximate.
	StrategyExact
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyGreedy:
		return "greedy"
	case StrategyExact:
		return "exact"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) impl() oi.Strategy {
	return oi.StrategyFor(s == StrategyExact)
}

func strategyFor(onlyExact bool) Strategy {
	if onlyExact {
		return StrategyExact
	}
	return StrategyGreedy
}

// Selection is a stay/discard partition together with the bits it was
// computed under.
type Selection struct {
	// Bits are the chosen key bits, ascending.
	Bits []int `json:"bits"`
	// Stay lists the retained filters, ascending.
	Stay []int `json:"stay"`
	// Discard lists the removed filters. It is ascending except for greedy
	// Blockers, which reports filters in the order they were removed.
	Discard []int `json:"discard"`
}

// Group is a set of filters that are pairwise independent under Bits.
type Group struct {
	Bits    []int `json:"bits"`
	Indices []int `json:"indices"`
}

// GroupSet is the result of MinimizeGroups.
type GroupSet struct {
	Groups []Group `json:"groups"`
	// Residual lists filters left over when WithMaxGroups stopped the split.
	Residual []int `json:"residual"`
}

// FindMaximalOISubset returns a maximal subset of filters that are pairwise
// independent under mask. Filters are taken greedily in input order, so the
// result is ascending and always starts with 0 for non-empty input.
//
// The subset is maximal (nothing more can be added) but not necessarily
// maximum.
func FindMaximalOISubset(filters []Filter, mask BitArray, opts ...Option) []int {
	o := applyOptions(opts)
	start := time.Now()

	kept := oi.MaximalSubset(filters, mask)

	o.metricsCollector.RecordSubset(len(filters), len(kept), time.Since(start))
	o.logger.WithCount(len(filters)).LogSubset(len(kept))
	return kept
}

// FindMaximalOISubsetIndices is FindMaximalOISubset restricted to indices,
// which are visited in the given order. The result preserves that order.
//
// Out-of-range or repeated indices fail with ErrInvalidArgument.
func FindMaximalOISubsetIndices(filters []Filter, indices []int, mask BitArray, opts ...Option) ([]int, error) {
	o := applyOptions(opts)
	start := time.Now()

	kept, err := oi.MaximalSubsetOf(filters, indices, mask)
	if err != nil {
		return nil, translateError(err)
	}

	o.metricsCollector.RecordSubset(len(indices), len(kept), time.Since(start))
	o.logger.WithCount(len(indices)).LogSubset(len(kept))
	return kept, nil
}

// BestMinSimilarityBits chooses l distinct bit positions that leave as few
// indistinguishable filter pairs as possible. The result is ascending.
//
// The default greedy strategy adds one bit at a time and is not guaranteed
// optimal. WithStrategy(StrategyExact) searches exhaustively within the
// budget. l outside [0, Width] fails with ErrInvalidArgument.
func BestMinSimilarityBits(filters []Filter, l int, opts ...Option) ([]int, error) {
	o := applyOptions(opts)
	cfg := o.config()
	start := time.Now()

	bits, err := o.strategy.impl().SelectBits(filters, l, cfg)
	o.metricsCollector.RecordBits(o.strategy.String(), l, time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}

	if o.logger.Enabled(context.Background(), slog.LevelDebug) {
		mask, _ := bitarray.FromBits(bits)
		o.logger.WithStrategy(o.strategy.String()).WithCount(len(filters)).
			LogBits(len(bits), oi.IndistinguishablePairs(filters, mask, cfg))
	}
	return bits, nil
}

// BestToStayMinME partitions filters into stay and discard using l key bits.
//
// In MaxOI mode stay is an independent subset under the chosen bits. In
// Blockers mode discard holds the filters whose removal leaves the rest
// independent. With onlyExact the bits and the partition come from
// exhaustive search; exceeding the budget fails with ErrResourceExceeded
// instead of falling back to a heuristic.
//
// stay and discard together list every index exactly once. Empty input
// yields two empty slices.
func BestToStayMinME(filters []Filter, l int, mode Mode, onlyExact bool, opts ...Option) (stay, discard []int, err error) {
	sel, err := Select(filters, l, mode, onlyExact, opts...)
	if err != nil {
		return nil, nil, err
	}
	return sel.Stay, sel.Discard, nil
}

// Select is BestToStayMinME that also reports the chosen bits.
func Select(filters []Filter, l int, mode Mode, onlyExact bool, opts ...Option) (Selection, error) {
	o := applyOptions(opts)
	s := strategyFor(onlyExact)
	start := time.Now()

	sel, err := oi.Select(s.impl(), filters, l, mode, o.config())
	o.metricsCollector.RecordSelect(s.String(), mode, len(filters), time.Since(start), err)
	if err != nil {
		return Selection{}, translateError(err)
	}

	o.logger.WithStrategy(s.String()).WithCount(len(filters)).
		LogSelect(mode, len(sel.Bits), len(sel.Stay), len(sel.Discard))
	return Selection{Bits: sel.Bits, Stay: sel.Stay, Discard: sel.Discard}, nil
}

// BitsToMask returns a mask with exactly the listed positions set.
// Out-of-range or repeated positions fail with ErrInvalidArgument.
func BitsToMask(bits []int) (BitArray, error) {
	m, err := bitarray.FromBits(bits)
	if err != nil {
		return BitArray{}, translateError(err)
	}
	return m, nil
}

// IndistinguishablePairs counts the filter pairs that no listed bit
// separates.
func IndistinguishablePairs(filters []Filter, bits []int, opts ...Option) (int, error) {
	mask, err := BitsToMask(bits)
	if err != nil {
		return 0, err
	}
	o := applyOptions(opts)
	return oi.IndistinguishablePairs(filters, mask, oi.Config{Workers: o.workers}), nil
}

// MinimizeGroups splits filters into groups that are each pairwise
// independent under their own l key bits, by running the selector
// repeatedly on what the previous round discarded.
//
// WithMaxGroups caps the number of groups; filters left at that point are
// returned in Residual. Groups and Residual together list every index
// exactly once.
func MinimizeGroups(filters []Filter, l int, mode Mode, onlyExact bool, opts ...Option) (GroupSet, error) {
	o := applyOptions(opts)
	s := strategyFor(onlyExact)
	start := time.Now()

	groups, residual, err := oi.MinimizeGroups(s.impl(), filters, l, mode, o.maxGroups, o.config())
	o.metricsCollector.RecordGroups(len(groups), time.Since(start), err)
	if err != nil {
		return GroupSet{}, translateError(err)
	}

	out := GroupSet{
		Groups:   make([]Group, len(groups)),
		Residual: residual,
	}
	for i, g := range groups {
		out.Groups[i] = Group{Bits: g.Bits, Indices: g.Indices}
	}

	o.logger.WithStrategy(s.String()).WithCount(len(filters)).
		LogGroups(len(out.Groups), len(out.Residual))
	return out, nil
}
