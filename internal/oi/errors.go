package oi

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tcamoi/bitarray"
)

var (
	// ErrInvalidL is matched by *InvalidLError.
	ErrInvalidL = errors.New("bit budget out of range")
	// ErrFilterIndex is matched by *FilterIndexError.
	ErrFilterIndex = errors.New("filter index out of range")
	// ErrDuplicateFilterIndex is matched by *DuplicateFilterIndexError.
	ErrDuplicateFilterIndex = errors.New("duplicate filter index")
	// ErrInvalidMode is matched by *InvalidModeError.
	ErrInvalidMode = errors.New("invalid selection mode")
	// ErrTooManyFilters is matched by *TooManyFiltersError.
	ErrTooManyFilters = errors.New("too many filters for exact search")
)

// InvalidLError reports a bit budget outside [0, bitarray.Width].
type InvalidLError struct {
	L int
}

func (e *InvalidLError) Error() string {
	return fmt.Sprintf("bit budget %d out of range [0, %d]", e.L, bitarray.Width)
}

func (e *InvalidLError) Unwrap() error { return ErrInvalidL }

// FilterIndexError reports an index outside the filter list.
type FilterIndexError struct {
	Index int
	Len   int
}

func (e *FilterIndexError) Error() string {
	return fmt.Sprintf("filter index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *FilterIndexError) Unwrap() error { return ErrFilterIndex }

// DuplicateFilterIndexError reports an index listed twice in a subset.
type DuplicateFilterIndexError struct {
	Index int
}

func (e *DuplicateFilterIndexError) Error() string {
	return fmt.Sprintf("filter index %d listed more than once", e.Index)
}

func (e *DuplicateFilterIndexError) Unwrap() error { return ErrDuplicateFilterIndex }

// InvalidModeError reports an unknown Mode.
type InvalidModeError struct {
	Mode Mode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid selection mode %d", int(e.Mode))
}

func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// TooManyFiltersError reports an input too large for the exact strategy's
// pair numbering.
type TooManyFiltersError struct {
	N   int
	Max int
}

func (e *TooManyFiltersError) Error() string {
	return fmt.Sprintf("exact search supports at most %d filters, got %d", e.Max, e.N)
}

func (e *TooManyFiltersError) Unwrap() error { return ErrTooManyFilters }

// ValidateL checks 0 <= l <= bitarray.Width.
func ValidateL(l int) error {
	if l < 0 || l > bitarray.Width {
		return &InvalidLError{L: l}
	}
	return nil
}
