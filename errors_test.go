package tcamoi

import (
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/hupe1980/tcamoi/internal/oi"
	"github.com/hupe1980/tcamoi/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		in       error
		sentinel error
		cause    error
	}{
		{"bit budget", &oi.InvalidLError{L: -1}, ErrInvalidArgument, oi.ErrInvalidL},
		{"bit index", &bitarray.IndexError{Index: 200}, ErrInvalidArgument, bitarray.ErrIndexOutOfRange},
		{"duplicate bit", &bitarray.DuplicateIndexError{Index: 3}, ErrInvalidArgument, bitarray.ErrDuplicateIndex},
		{"filter index", &oi.FilterIndexError{Index: 9, Len: 2}, ErrInvalidArgument, oi.ErrFilterIndex},
		{"duplicate filter", &oi.DuplicateFilterIndexError{Index: 1}, ErrInvalidArgument, oi.ErrDuplicateFilterIndex},
		{"mode", &oi.InvalidModeError{Mode: 3}, ErrInvalidArgument, oi.ErrInvalidMode},
		{"budget", &resource.ExhaustedError{Reason: "deadline", Phase: "exact-subset"}, ErrResourceExceeded, resource.ErrBudgetExhausted},
		{"too many", &oi.TooManyFiltersError{N: 70000, Max: oi.MaxExactFilters}, ErrResourceExceeded, oi.ErrTooManyFilters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, tt.cause)
			assert.NotEmpty(t, err.Error())
		})
	}

	assert.NoError(t, translateError(nil))
	assert.Equal(t, io.EOF, translateError(io.EOF))
}

func TestBudgetExceededError_Fields(t *testing.T) {
	err := translateError(&resource.ExhaustedError{Reason: "ops", Phase: "exact-subset", Used: 11, Limit: 10})

	var be *BudgetExceededError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "ops", be.Reason)
	assert.Equal(t, "exact-subset", be.Phase)
	assert.Equal(t, int64(11), be.Used)
	assert.Equal(t, int64(10), be.Limit)
	assert.Equal(t, "budget exceeded: exact-subset used 11 of 10 ops", be.Error())
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}

func TestTypedErrors_WithoutCause(t *testing.T) {
	err := &InvalidBitBudgetError{L: 105}
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "invalid bit budget: 105 not in [0, 104]", err.Error())
}
