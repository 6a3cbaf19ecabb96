package bitarray

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is matched by errors for bit positions outside [0, Width).
	ErrIndexOutOfRange = errors.New("bit index out of range")

	// ErrDuplicateIndex is matched by errors for bit lists that name a position twice.
	ErrDuplicateIndex = errors.New("duplicate bit index")
)

// IndexError reports a bit position outside [0, Width).
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bit index %d out of range [0, %d)", e.Index, Width)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// DuplicateIndexError reports a bit position listed more than once.
type DuplicateIndexError struct {
	Index int
}

func (e *DuplicateIndexError) Error() string {
	return fmt.Sprintf("bit index %d listed more than once", e.Index)
}

func (e *DuplicateIndexError) Unwrap() error { return ErrDuplicateIndex }
