// Package column implements the physical column representations behind
// one materialize contract: flat, constant, function-derived,
// dictionary-encoded, run-length-encoded, and sparse null-indexed columns.
//
// Every variant exposes Materialize, producing the full, dense, logically
// ordered native array it represents. Variants storing compressed payloads
// additionally support in-place scalar transforms applied to the stored
// values rather than the materialized array.
package column

import (
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Column is the single contract shared by all physical representations.
type Column interface {
	// Name returns the column name.
	Name() string
	// Type returns the declared logical type.
	Type() types.DataType
	// Len returns the logical row count.
	Len() int
	// Materialize produces the full dense native array the column
	// represents. Invariant violations in externally supplied payloads
	// surface here as invariant errors, never masked.
	Materialize() (*types.NativeArray, error)
}

// Transformable is implemented by variants that store compressed payloads
// (constant, function, dictionary, run-length, sparse). Transform applies
// a pure elementwise function to the stored values only, so
// materialize(transform(c)) equals mapping the function over
// materialize(c) without ever materializing.
type Transformable interface {
	Transform(fn func(any) any)
}

func countEncoded(encoding string) {
	metrics.EncodedColumns.WithLabelValues(encoding).Inc()
}
