// Package tabular provides columnar data tooling: compact physical
// column encodings and streaming, mergeable per-column statistical
// profiles.
//
// # Overview
//
// Tabular holds data as relations (a schema plus positional rows) and
// answers two questions about them: how can each column be stored
// compactly, and what does each column look like statistically.
//
// Column encodings (pkg/codec, pkg/column):
//   - flat: plain dense arrays
//   - constant: one value repeated
//   - function: a lazily evaluated, memoized generator
//   - dictionary: distinct values plus indices
//   - run-length: (value, run length) pairs
//   - sparse: non-null values plus their positions
//
// Column profiles (pkg/profile, pkg/table):
//   - exact row and missing counts
//   - native-typed minimum and maximum
//   - monotonicity classification and transition counts
//   - most-frequent values with exact batch counts
//   - a bounded streaming histogram
//   - a k-minimum-values distinct sketch
//
// Profiles computed over disjoint batches merge into one profile for
// the whole relation, so large tables profile in parallel: the driver
// in pkg/table splits rows into batches, profiles them concurrently,
// and folds the results in batch order.
//
// # Quick Start
//
// Profile a relation:
//
//	import (
//	    "context"
//	    "github.com/ajitpratap0/tabular/pkg/table"
//	)
//
//	tp, err := table.Profile(context.Background(), rel, table.DefaultProfileOptions())
//	if err != nil {
//	    return err
//	}
//	p, _ := tp.Column("passenger_count")
//	fmt.Println(p.DistinctEstimate())
//
// # Key Packages
//
//	pkg/types    - Logical type system, scalars, parsing
//	pkg/codec    - Run-length and dictionary encode/decode kernels
//	pkg/column   - Physical column representations
//	pkg/profile  - Per-column profiles and the profile merge
//	pkg/table    - Relations, batching, the parallel profiling driver
//	pkg/schema   - Relation schemas with alias lookup and validation
//	pkg/render   - Text-table rendering for terminals
//	pkg/arrowio  - Arrow record and IPC file interop
//	pkg/filters  - Bloom filters for membership pre-checks
package tabular
