package resource

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_Ops(t *testing.T) {
	b := NewBudget(BudgetConfig{MaxOps: 100})
	b.SetPhase("exact-bits")

	require.NoError(t, b.Charge(60))
	require.NoError(t, b.Charge(40))
	assert.Equal(t, int64(0), b.Remaining())

	err := b.Charge(1)
	require.ErrorIs(t, err, ErrBudgetExhausted)

	var ee *ExhaustedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "ops", ee.Reason)
	assert.Equal(t, "exact-bits", ee.Phase)
	assert.Equal(t, int64(101), ee.Used)
	assert.Equal(t, int64(100), ee.Limit)

	// Sticky once exhausted.
	assert.ErrorIs(t, b.Charge(0), ErrBudgetExhausted)
	assert.Equal(t, err, b.Exhausted())
}

func TestBudget_Defaults(t *testing.T) {
	b := NewBudget(BudgetConfig{})
	assert.Equal(t, int64(DefaultMaxOps), b.Limit())
	assert.NoError(t, b.Exhausted())

	unlimited := NewBudget(BudgetConfig{MaxOps: -1})
	require.NoError(t, unlimited.Charge(DefaultMaxOps*4))
	assert.Equal(t, int64(-1), unlimited.Remaining())
	assert.Equal(t, int64(-1), unlimited.Limit())
}

func TestBudget_Nil(t *testing.T) {
	var b *Budget
	assert.NoError(t, b.Charge(1<<40))
	assert.Equal(t, int64(-1), b.Remaining())
	assert.Equal(t, int64(0), b.Used())
	assert.NoError(t, b.Exhausted())
	b.SetPhase("ignored")
}

func TestBudget_Deadline(t *testing.T) {
	b := NewBudget(BudgetConfig{MaxOps: -1, MaxDuration: time.Nanosecond})
	time.Sleep(time.Millisecond)

	var err error
	for i := 0; i < 4*checkInterval && err == nil; i++ {
		err = b.Charge(1)
	}
	require.ErrorIs(t, err, ErrBudgetExhausted)

	var ee *ExhaustedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "deadline", ee.Reason)
}

func TestBudget_Progress(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []Progress
	)
	b := NewBudget(BudgetConfig{
		MaxOps:           -1,
		ProgressInterval: time.Hour,
		Progress: func(p Progress) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, p)
		},
	})
	b.SetPhase("mis")

	for range 10 * checkInterval {
		require.NoError(t, b.Charge(1))
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 1, "throttled to one call per interval")
	assert.Equal(t, "mis", calls[0].Phase)
	assert.Equal(t, int64(checkInterval), calls[0].Ops)
}

func TestBudget_Concurrent(t *testing.T) {
	b := NewBudget(BudgetConfig{MaxOps: 1000})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				_ = b.Charge(1)
			}
		}()
	}
	wg.Wait()

	assert.ErrorIs(t, b.Exhausted(), ErrBudgetExhausted)
	// Once exhausted, charges stop counting; at most one in-flight charge
	// per goroutine lands past the limit.
	assert.GreaterOrEqual(t, b.Used(), int64(1001))
	assert.LessOrEqual(t, b.Used(), int64(1008))
}
