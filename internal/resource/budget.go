package resource

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrBudgetExhausted is matched by every *ExhaustedError.
var ErrBudgetExhausted = errors.New("exploration budget exhausted")

// DefaultMaxOps is the op ceiling used when BudgetConfig.MaxOps is 0.
const DefaultMaxOps = 1 << 24

// checkInterval is how many ops pass between deadline and progress checks.
const checkInterval = 1024

// ExhaustedError reports which limit stopped a search.
type ExhaustedError struct {
	// Reason is "ops" or "deadline".
	Reason string
	Phase  string
	Used   int64
	Limit  int64
}

func (e *ExhaustedError) Error() string {
	if e.Reason == "deadline" {
		return fmt.Sprintf("%s: %s deadline reached after %d ops", ErrBudgetExhausted, e.Phase, e.Used)
	}
	return fmt.Sprintf("%s: %s used %d ops, limit %d", ErrBudgetExhausted, e.Phase, e.Used, e.Limit)
}

func (e *ExhaustedError) Unwrap() error { return ErrBudgetExhausted }

// Progress is a snapshot passed to progress callbacks.
type Progress struct {
	Phase   string
	Ops     int64
	Limit   int64
	Elapsed time.Duration
}

// BudgetConfig configures exploration limits.
type BudgetConfig struct {
	// MaxOps limits charged ops. 0 means DefaultMaxOps, negative means unlimited.
	MaxOps int64

	// MaxDuration limits wall-clock time. 0 means unlimited.
	MaxDuration time.Duration

	// Progress, if set, receives throttled progress snapshots.
	Progress func(Progress)

	// ProgressInterval throttles Progress. 0 means one second.
	ProgressInterval time.Duration
}

// Budget tracks consumption against a BudgetConfig. It is safe for
// concurrent use.
type Budget struct {
	maxOps   int64
	started  time.Time
	deadline time.Time

	used      atomic.Int64
	exhausted atomic.Pointer[ExhaustedError]
	phase     atomic.Value // string

	progress  func(Progress)
	sometimes *rate.Sometimes
}

// NewBudget starts a budget. The clock starts now.
func NewBudget(cfg BudgetConfig) *Budget {
	b := &Budget{
		maxOps:   cfg.MaxOps,
		started:  time.Now(),
		progress: cfg.Progress,
	}
	if b.maxOps == 0 {
		b.maxOps = DefaultMaxOps
	}
	if cfg.MaxDuration > 0 {
		b.deadline = b.started.Add(cfg.MaxDuration)
	}
	if b.progress != nil {
		interval := cfg.ProgressInterval
		if interval <= 0 {
			interval = time.Second
		}
		b.sometimes = &rate.Sometimes{Interval: interval}
	}
	b.phase.Store("")
	return b
}

// SetPhase names the search currently charging the budget.
func (b *Budget) SetPhase(phase string) {
	if b == nil {
		return
	}
	b.phase.Store(phase)
}

func (b *Budget) currentPhase() string {
	return b.phase.Load().(string)
}

// Charge consumes n ops. It returns an *ExhaustedError once a limit is
// exceeded, and keeps returning it afterwards.
func (b *Budget) Charge(n int64) error {
	if b == nil {
		return nil
	}
	if e := b.exhausted.Load(); e != nil {
		return e
	}

	used := b.used.Add(n)
	if b.maxOps > 0 && used > b.maxOps {
		return b.markExhausted("ops", used)
	}

	// Only look at the clock when crossing a checkInterval boundary.
	if used/checkInterval != (used-n)/checkInterval {
		if !b.deadline.IsZero() && time.Now().After(b.deadline) {
			return b.markExhausted("deadline", used)
		}
		if b.progress != nil {
			b.sometimes.Do(func() {
				b.progress(Progress{
					Phase:   b.currentPhase(),
					Ops:     used,
					Limit:   b.maxOps,
					Elapsed: time.Since(b.started),
				})
			})
		}
	}
	return nil
}

// Remaining returns how many ops can still be charged, or -1 if unlimited.
func (b *Budget) Remaining() int64 {
	if b == nil || b.maxOps < 0 {
		return -1
	}
	return max(b.maxOps-b.used.Load(), 0)
}

// Used returns the ops charged so far.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

// Limit returns the op ceiling, or -1 if unlimited.
func (b *Budget) Limit() int64 {
	if b == nil || b.maxOps < 0 {
		return -1
	}
	return b.maxOps
}

// Exhausted returns the error that stopped the budget, or nil.
func (b *Budget) Exhausted() error {
	if b == nil {
		return nil
	}
	if e := b.exhausted.Load(); e != nil {
		return e
	}
	return nil
}

func (b *Budget) markExhausted(reason string, used int64) error {
	e := &ExhaustedError{
		Reason: reason,
		Phase:  b.currentPhase(),
		Used:   used,
		Limit:  b.maxOps,
	}
	if b.exhausted.CompareAndSwap(nil, e) {
		return e
	}
	return b.exhausted.Load()
}
