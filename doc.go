// Package tcamoi analyses ternary packet-match filters for order
// independence and picks which filters to keep under a key-bit budget.
//
// A filter is a value/mask pair over Width (104) bits. A mask bit of 1 means
// the value bit must match; 0 means wildcard. Two filters are independent
// under an active-bit mask when some active bit is constrained in both and
// their values differ there, so no header can match both.
//
// # Quick Start
//
//	fs := []tcamoi.Filter{
//	    filter.MustParse("0*1"),
//	    filter.MustParse("1*0"),
//	    filter.MustParse("0*0"),
//	}
//
//	// Greedy: fast, deterministic, not guaranteed optimal.
//	stay, discard, err := tcamoi.BestToStayMinME(fs, 2, tcamoi.MaxOI, false)
//
//	// Exact: exhaustive within a budget, fails instead of approximating.
//	stay, discard, err = tcamoi.BestToStayMinME(fs, 2, tcamoi.Blockers, true,
//	    tcamoi.WithBudget(tcamoi.BudgetConfig{MaxOps: 1 << 20, MaxDuration: time.Second}))
//
// # Building Blocks
//
//   - FindMaximalOISubset and FindMaximalOISubsetIndices: greedy maximal
//     independent subsets in input order.
//   - BestMinSimilarityBits: choose l bits that leave the fewest
//     indistinguishable pairs.
//   - BitsToMask: turn a bit list into an active-bit mask.
//   - MinimizeGroups: split a table into independent groups, each with its
//     own key bits.
//
// # Errors
//
// Bad input matches ErrInvalidArgument; an exact search that runs out of
// budget matches ErrResourceExceeded. Use errors.As with the typed errors
// (InvalidBitBudgetError, BudgetExceededError, ...) for details. Failed calls
// return no partial results and never log.
//
// All functions are synchronous and keep no state between calls.
package tcamoi
