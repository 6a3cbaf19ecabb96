package tcamoi

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/tcamoi/internal/oi"
	"github.com/hupe1980/tcamoi/internal/resource"
)

// DefaultMaxOps is the exact-search op ceiling used when no budget is set.
const DefaultMaxOps = resource.DefaultMaxOps

// BudgetConfig bounds the exact strategy.
//
// One op is charged per filter pair when an exact search builds its tables
// and one per search node afterwards. The greedy strategy is never charged.
type BudgetConfig struct {
	// MaxOps limits charged ops. 0 means DefaultMaxOps, negative means
	// unlimited.
	MaxOps int64

	// MaxDuration limits wall-clock time per call. 0 means unlimited.
	MaxDuration time.Duration
}

// Progress is a snapshot reported while an exact search runs.
type Progress = resource.Progress

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	workers          int
	budget           BudgetConfig
	strategy         Strategy
	progress         func(Progress)
	progressInterval time.Duration
	maxGroups        int
}

// Option configures a single tcamoi call.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tcamoi.NewJSONLogger(slog.LevelDebug)
//	stay, discard, _ := tcamoi.BestToStayMinME(filters, 16, tcamoi.MaxOI, false, tcamoi.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tcamoi.BasicMetricsCollector{}
//	_, _, _ = tcamoi.BestToStayMinME(filters, 16, tcamoi.Blockers, true, tcamoi.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Selections: %d, Avg latency: %dns\n", stats.SelectCount, stats.SelectAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithWorkers bounds the goroutines used to score filter pairs.
// n <= 0 selects runtime.GOMAXPROCS(0); 1 keeps all work on the caller's
// goroutine. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBudget bounds the exact strategy. A call that exceeds the budget fails
// with a *BudgetExceededError.
func WithBudget(cfg BudgetConfig) Option {
	return func(o *options) {
		o.budget = cfg
	}
}

// WithStrategy selects the bit-selection strategy for BestMinSimilarityBits.
// The selectors take their strategy from their onlyExact argument instead.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithProgress reports exact-search progress to fn at most once per
// interval (0 means one second). fn is called from the searching goroutine
// and must not block.
func WithProgress(fn func(Progress), interval time.Duration) Option {
	return func(o *options) {
		o.progress = fn
		o.progressInterval = interval
	}
}

// WithMaxGroups caps the number of groups MinimizeGroups produces.
// 0 means no cap.
func WithMaxGroups(n int) Option {
	return func(o *options) {
		o.maxGroups = max(n, 0)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		strategy:         StrategyGreedy,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// config builds the per-call execution settings. The budget clock starts
// here.
func (o *options) config() oi.Config {
	return oi.Config{
		Workers: o.workers,
		Budget: resource.NewBudget(resource.BudgetConfig{
			MaxOps:           o.budget.MaxOps,
			MaxDuration:      o.budget.MaxDuration,
			Progress:         o.progress,
			ProgressInterval: o.progressInterval,
		}),
	}
}
