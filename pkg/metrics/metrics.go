// Package metrics provides performance tracking and observability for
// Tabular using Prometheus metrics. It offers collectors for the profiling
// engine: rows and batches profiled, profile durations, merge counts, and
// throughput.
//
// # Basic Usage
//
//	// Record profiled rows
//	metrics.RowsProfiled.WithLabelValues("orders", "amount").Add(25000)
//
//	// Track profiling latency
//	timer := metrics.NewTimer("profile_batch")
//	profileBatch(batch)
//	duration := timer.Stop()
//	metrics.ProfileDuration.WithLabelValues("batch", "orders").Observe(float64(duration.Nanoseconds()))
//
//	// Track throughput
//	tracker := metrics.NewThroughputTracker("orders")
//	tracker.Increment(int64(batch.Len()))
//	throughput := tracker.GetAndReset()
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsProfiled tracks the total number of rows profiled per table and column.
	RowsProfiled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tabular_rows_profiled_total",
			Help: "Total number of rows profiled",
		},
		[]string{"table", "column"},
	)

	// BatchesProfiled tracks the total number of batches profiled per table.
	BatchesProfiled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tabular_batches_profiled_total",
			Help: "Total number of batches profiled",
		},
		[]string{"table"},
	)

	// ProfileDuration tracks the distribution of profiling latencies in
	// nanoseconds. Buckets are tuned for in-memory batch work.
	ProfileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tabular_profile_duration_nanoseconds",
			Help: "Profiling latency in nanoseconds",
			Buckets: []float64{
				1000,   // 1μs - tiny batches
				10000,  // 10μs - small columns
				100000, // 100μs - typical columns
				1e6,    // 1ms - wide batches
				1e7,    // 10ms - large batches
				1e8,    // 100ms - whole tables
				1e9,    // 1s - very large tables
			},
		},
		[]string{"operation", "table"},
	)

	// ProfileMerges tracks the total number of profile merges performed.
	ProfileMerges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tabular_profile_merges_total",
			Help: "Total number of column profile merges",
		},
		[]string{"table"},
	)

	// Throughput tracks profiled rows per second per table.
	Throughput = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tabular_throughput_rows_per_second",
			Help: "Current profiling throughput in rows per second",
		},
		[]string{"table"},
	)

	// EncodedColumns tracks columns encoded by physical representation.
	EncodedColumns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tabular_encoded_columns_total",
			Help: "Total number of columns encoded, by representation",
		},
		[]string{"encoding"},
	)
)

// Timer provides a simple timing mechanism for measuring operation durations.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
//
// Example:
//
//	timer := metrics.NewTimer("profile_batch")
//	profileBatch(batch)
//	duration := timer.Stop()
//	logger.Debug("batch profiled", zap.Duration("duration", duration))
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Stop stops the timer and returns the elapsed duration since creation.
// The timer can be stopped multiple times, each returning the total
// elapsed time since creation.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// ThroughputTracker tracks profiling throughput (rows per second) over time
// windows. Thread-safe for concurrent use.
type ThroughputTracker struct {
	mu        sync.Mutex
	count     int64
	lastReset time.Time
	table     string
}

// NewThroughputTracker creates a new throughput tracker for a table.
func NewThroughputTracker(table string) *ThroughputTracker {
	return &ThroughputTracker{
		lastReset: time.Now(),
		table:     table,
	}
}

// Increment adds n to the row count. Safe for concurrent use.
func (t *ThroughputTracker) Increment(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count += n
}

// GetAndReset calculates the current throughput (rows/second), updates the
// Prometheus gauge, resets the counter, and returns the calculated value.
func (t *ThroughputTracker) GetAndReset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.lastReset).Seconds()
	if elapsed == 0 {
		return 0
	}

	throughput := float64(t.count) / elapsed

	t.count = 0
	t.lastReset = time.Now()

	Throughput.WithLabelValues(t.table).Set(throughput)

	return throughput
}
