package tcamoi

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    selectHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordSelect(strategy string, mode tcamoi.Mode, filters int, d time.Duration, err error) {
//	    p.selectHistogram.WithLabelValues(strategy, mode.String()).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordSelect is called after each BestToStayMinME / Select call.
	// filters is the input size, err is nil if successful.
	RecordSelect(strategy string, mode Mode, filters int, duration time.Duration, err error)

	// RecordBits is called after each BestMinSimilarityBits call.
	RecordBits(strategy string, l int, duration time.Duration, err error)

	// RecordSubset is called after each maximal subset search.
	// kept is the size of the result.
	RecordSubset(filters, kept int, duration time.Duration)

	// RecordGroups is called after each MinimizeGroups call.
	RecordGroups(groups int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSelect(string, Mode, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBits(string, int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordSubset(int, int, time.Duration)                 {}
func (NoopMetricsCollector) RecordGroups(int, time.Duration, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SelectCount      atomic.Int64
	SelectErrors     atomic.Int64
	SelectExact      atomic.Int64
	SelectTotalNanos atomic.Int64
	BitsCount        atomic.Int64
	BitsErrors       atomic.Int64
	BitsTotalNanos   atomic.Int64
	SubsetCount      atomic.Int64
	SubsetFilters    atomic.Int64
	SubsetKept       atomic.Int64
	GroupsCount      atomic.Int64
	GroupsErrors     atomic.Int64
	GroupsTotal      atomic.Int64
}

// RecordSelect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelect(strategy string, _ Mode, _ int, duration time.Duration, err error) {
	b.SelectCount.Add(1)
	b.SelectTotalNanos.Add(duration.Nanoseconds())
	if strategy == StrategyExact.String() {
		b.SelectExact.Add(1)
	}
	if err != nil {
		b.SelectErrors.Add(1)
	}
}

// RecordBits implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBits(_ string, _ int, duration time.Duration, err error) {
	b.BitsCount.Add(1)
	b.BitsTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BitsErrors.Add(1)
	}
}

// RecordSubset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSubset(filters, kept int, _ time.Duration) {
	b.SubsetCount.Add(1)
	b.SubsetFilters.Add(int64(filters))
	b.SubsetKept.Add(int64(kept))
}

// RecordGroups implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGroups(groups int, _ time.Duration, err error) {
	b.GroupsCount.Add(1)
	b.GroupsTotal.Add(int64(groups))
	if err != nil {
		b.GroupsErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SelectCount:    b.SelectCount.Load(),
		SelectErrors:   b.SelectErrors.Load(),
		SelectExact:    b.SelectExact.Load(),
		SelectAvgNanos: avg(b.SelectTotalNanos.Load(), b.SelectCount.Load()),
		BitsCount:      b.BitsCount.Load(),
		BitsErrors:     b.BitsErrors.Load(),
		BitsAvgNanos:   avg(b.BitsTotalNanos.Load(), b.BitsCount.Load()),
		SubsetCount:    b.SubsetCount.Load(),
		SubsetFilters:  b.SubsetFilters.Load(),
		SubsetKept:     b.SubsetKept.Load(),
		GroupsCount:    b.GroupsCount.Load(),
		GroupsErrors:   b.GroupsErrors.Load(),
		GroupsTotal:    b.GroupsTotal.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SelectCount    int64
	SelectErrors   int64
	SelectExact    int64
	SelectAvgNanos int64
	BitsCount      int64
	BitsErrors     int64
	BitsAvgNanos   int64
	SubsetCount    int64
	SubsetFilters  int64
	SubsetKept     int64
	GroupsCount    int64
	GroupsErrors   int64
	GroupsTotal    int64
}
