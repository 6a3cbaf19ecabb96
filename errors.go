package tcamoi

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/internal/oi"
	"github.com/hupe1980/tcamoi/internal/resource"
)

var (
	// ErrInvalidArgument is matched by every error caused by bad input:
	// bit budgets, bit positions, filter indices and modes.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceExceeded is matched when an exact search cannot finish
	// within its budget.
	ErrResourceExceeded = errors.New("resource exceeded")
)

// causes builds the Unwrap list of a typed error: its sentinel followed by
// the underlying error, if any.
func causes(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

// InvalidBitBudgetError indicates a bit budget l outside [0, Width].
//
// It matches ErrInvalidArgument.
type InvalidBitBudgetError struct {
	L     int
	cause error
}

func (e *InvalidBitBudgetError) Error() string {
	return fmt.Sprintf("invalid bit budget: %d not in [0, %d]", e.L, Width)
}

func (e *InvalidBitBudgetError) Unwrap() []error { return causes(ErrInvalidArgument, e.cause) }

// BitIndexError indicates a bit position outside [0, Width).
//
// It matches ErrInvalidArgument and bitarray.ErrIndexOutOfRange.
type BitIndexError struct {
	Index int
	cause error
}

func (e *BitIndexError) Error() string {
	return fmt.Sprintf("invalid bit index: %d not in [0, %d)", e.Index, Width)
}

func (e *BitIndexError) Unwrap() []error { return causes(ErrInvalidArgument, e.cause) }

// DuplicateBitError indicates a bit position listed more than once.
//
// It matches ErrInvalidArgument and bitarray.ErrDuplicateIndex.
type DuplicateBitError struct {
	Index int
	cause error
}

func (e *DuplicateBitError) Error() string {
	return fmt.Sprintf("duplicate bit index: %d", e.Index)
}

func (e *DuplicateBitError) Unwrap() []error { return causes(ErrInvalidArgument, e.cause) }

// FilterIndexError indicates a filter index outside [0, Len).
//
// It matches ErrInvalidArgument.
type FilterIndexError struct {
	Index int
	Len   int
	cause error
}

func (e *FilterIndexError) Error() string {
	return fmt.Sprintf("invalid filter index: %d not in [0, %d)", e.Index, e.Len)
}

func (e *FilterIndexError) Unwrap() []error { return causes(ErrInvalidArgument, e.cause) }

// DuplicateFilterIndexError indicates a filter index listed more than once.
//
// It matches ErrInvalidArgument.
type DuplicateFilterIndexError struct {
	Index int
	cause error
}

func (e *DuplicateFilterIndexError) Error() string {
	return fmt.Sprintf("duplicate filter index: %d", e.Index)
}

func (e *DuplicateFilterIndexError) Unwrap() []error { return causes(ErrInvalidArgument, e.cause) }

// InvalidModeError indicates an unknown selection mode.
//
// It matches ErrInvalidArgument.
type InvalidModeError struct {
	Mode  Mode
	cause error
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode: %s", e.Mode)
}

func (e *InvalidModeError) Unwrap() []error { return causes(ErrInvalidArgument, e.cause) }

// BudgetExceededError indicates that an exact search ran out of budget.
// Nothing was returned; the search does not fall back to a heuristic.
//
// It matches ErrResourceExceeded.
type BudgetExceededError struct {
	// Reason is "ops" or "deadline".
	Reason string
	// Phase names the search that was running.
	Phase string
	Used  int64
	Limit int64
	cause error
}

func (e *BudgetExceededError) Error() string {
	if e.Reason == "deadline" {
		return fmt.Sprintf("budget exceeded: %s hit its deadline after %d ops", e.Phase, e.Used)
	}
	return fmt.Sprintf("budget exceeded: %s used %d of %d ops", e.Phase, e.Used, e.Limit)
}

func (e *BudgetExceededError) Unwrap() []error { return causes(ErrResourceExceeded, e.cause) }

// TooManyFiltersError indicates an input larger than the exact searches
// can number.
//
// It matches ErrResourceExceeded.
type TooManyFiltersError struct {
	N     int
	Max   int
	cause error
}

func (e *TooManyFiltersError) Error() string {
	return fmt.Sprintf("too many filters for exact search: %d > %d", e.N, e.Max)
}

func (e *TooManyFiltersError) Unwrap() []error { return causes(ErrResourceExceeded, e.cause) }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Argument errors.
	var le *oi.InvalidLError
	if errors.As(err, &le) {
		return &InvalidBitBudgetError{L: le.L, cause: err}
	}
	var ie *bitarray.IndexError
	if errors.As(err, &ie) {
		return &BitIndexError{Index: ie.Index, cause: err}
	}
	var de *bitarray.DuplicateIndexError
	if errors.As(err, &de) {
		return &DuplicateBitError{Index: de.Index, cause: err}
	}
	var fe *oi.FilterIndexError
	if errors.As(err, &fe) {
		return &FilterIndexError{Index: fe.Index, Len: fe.Len, cause: err}
	}
	var dfe *oi.DuplicateFilterIndexError
	if errors.As(err, &dfe) {
		return &DuplicateFilterIndexError{Index: dfe.Index, cause: err}
	}
	var me *oi.InvalidModeError
	if errors.As(err, &me) {
		return &InvalidModeError{Mode: me.Mode, cause: err}
	}
	if errors.Is(err, oi.ErrInvalidMode) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	// Resource errors.
	var ee *resource.ExhaustedError
	if errors.As(err, &ee) {
		return &BudgetExceededError{Reason: ee.Reason, Phase: ee.Phase, Used: ee.Used, Limit: ee.Limit, cause: err}
	}
	var te *oi.TooManyFiltersError
	if errors.As(err, &te) {
		return &TooManyFiltersError{N: te.N, Max: te.Max, cause: err}
	}

	return err
}
