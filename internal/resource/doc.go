// Package resource implements the exploration budget that bounds the exact
// (exhaustive / branch-and-bound) searches.
//
// A Budget caps two resources:
//
//   - Ops: every predicate evaluation or search node charges one op
//   - Wall clock: an optional deadline, checked every checkInterval ops
//
// Exceeding either makes Charge return an *ExhaustedError. The searches stop
// at that point and report the failure; they never fall back to a heuristic.
//
//	b := resource.NewBudget(resource.BudgetConfig{MaxOps: 1 << 20})
//	for ... {
//	    if err := b.Charge(1); err != nil {
//	        return err
//	    }
//	}
//
// # Progress
//
// A Budget may carry a progress callback. It is invoked from Charge at most
// once per configured interval (golang.org/x/time/rate.Sometimes), with the
// phase name set through SetPhase.
//
// # Nil Safety
//
// All methods handle a nil *Budget gracefully: a nil budget is unlimited.
package resource
