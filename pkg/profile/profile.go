// Package profile implements the streaming, mergeable per-column
// statistical profile: exact count and missing count, native min/max,
// monotonicity classification, transition counting, most-frequent values,
// a bounded streaming histogram, and a k-minimum-values distinct sketch,
// plus the pure merge combining profiles computed over disjoint batches.
package profile

import (
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Default bounds for the approximate structures.
const (
	// DefaultMFVSize bounds the most-frequent-value list
	DefaultMFVSize = 32
	// DefaultBins bounds the histogram bin count
	DefaultBins = 50
	// DefaultSketchSize is K for the distinct sketch
	DefaultSketchSize = 32
)

// Options bounds the approximate structures of a profile.
type Options struct {
	MFVSize       int
	HistogramBins int
	SketchSize    int
}

// DefaultOptions returns the standard bounds.
func DefaultOptions() Options {
	return Options{
		MFVSize:       DefaultMFVSize,
		HistogramBins: DefaultBins,
		SketchSize:    DefaultSketchSize,
	}
}

// Ordering classifies within-batch sortedness of the non-null values.
type Ordering uint8

const (
	// OrderingUnset means no comparisons were made
	OrderingUnset Ordering = iota
	// OrderingAscending means every observed step was non-decreasing
	OrderingAscending
	// OrderingDescending means every observed step was non-increasing
	OrderingDescending
	// OrderingMixed means steps in both directions were observed
	OrderingMixed
)

func (o Ordering) String() string {
	switch o {
	case OrderingAscending:
		return "ascending"
	case OrderingDescending:
		return "descending"
	case OrderingMixed:
		return "mixed"
	default:
		return "unset"
	}
}

// Bin is one histogram bucket: a representative value (the left edge for
// batch-level equal-width binning, a centroid after merges) and its count.
type Bin struct {
	Value float64 `json:"value"`
	Count int64   `json:"count"`
}

// ColumnProfile is the per-column summary. Profiles are read-only after
// merge: merging produces a new profile and leaves both inputs untouched.
type ColumnProfile struct {
	Name string         `json:"name"`
	Type types.DataType `json:"type"`

	// Exact aggregates
	Count   int64 `json:"count"`
	Missing int64 `json:"missing"`

	// Native-typed bounds; nil when no non-null value was observed
	Minimum *types.Scalar `json:"minimum,omitempty"`
	Maximum *types.Scalar `json:"maximum,omitempty"`

	// Ordering signal: batch-local sortedness plus the count of value
	// changes between consecutive non-null observations
	Ordering    Ordering `json:"ordering"`
	Transitions int64    `json:"transitions"`

	// Up to MFVSize most-frequent values with their exact batch counts
	MostFrequentValues []string `json:"most_frequent_values"`
	MostFrequentCounts []int64  `json:"most_frequent_counts"`

	// Bounded histogram; empty for types without a numeric order
	Bins []Bin `json:"bins"`

	// K smallest value hashes seen, sorted ascending
	Sketch []uint32 `json:"sketch"`

	// sketchSize is K for this profile's sketch bound
	sketchSize int
}

// NewColumnProfile creates an empty profile for a column.
func NewColumnProfile(name string, dtype types.DataType, opts Options) *ColumnProfile {
	if opts.SketchSize == 0 {
		opts = DefaultOptions()
	}
	return &ColumnProfile{
		Name:       name,
		Type:       dtype,
		sketchSize: opts.SketchSize,
	}
}

// SketchSize returns K, the sketch bound of this profile.
func (p *ColumnProfile) SketchSize() int {
	if p.sketchSize == 0 {
		return DefaultSketchSize
	}
	return p.sketchSize
}

// DistinctEstimate estimates the number of distinct values. Below K
// distinct observations the estimate is exact; at capacity it is the
// k-minimum-values estimator (K-1) / (kth smallest hash / 2^32).
func (p *ColumnProfile) DistinctEstimate() int64 {
	k := p.SketchSize()
	if len(p.Sketch) < k {
		return int64(len(p.Sketch))
	}
	kth := p.Sketch[k-1]
	if kth == 0 {
		return int64(k)
	}
	fraction := float64(kth) / float64(1<<32)
	return int64(float64(k-1)/fraction + 0.5)
}

// Map serializes the profile to a plain field-value mapping for table
// rendering or export.
func (p *ColumnProfile) Map() map[string]any {
	m := map[string]any{
		"name":                 p.Name,
		"type":                 p.Type.String(),
		"count":                p.Count,
		"missing":              p.Missing,
		"ordering":             p.Ordering.String(),
		"transitions":          p.Transitions,
		"most_frequent_values": p.MostFrequentValues,
		"most_frequent_counts": p.MostFrequentCounts,
		"bins":                 p.Bins,
		"sketch":               p.Sketch,
		"distinct_estimate":    p.DistinctEstimate(),
	}
	if p.Minimum != nil {
		m["minimum"] = p.Minimum.Value()
	} else {
		m["minimum"] = nil
	}
	if p.Maximum != nil {
		m["maximum"] = p.Maximum.Value()
	} else {
		m["maximum"] = nil
	}
	return m
}

// Clone returns a deep copy of the profile.
func (p *ColumnProfile) Clone() *ColumnProfile {
	out := *p
	if p.Minimum != nil {
		min := *p.Minimum
		out.Minimum = &min
	}
	if p.Maximum != nil {
		max := *p.Maximum
		out.Maximum = &max
	}
	out.MostFrequentValues = append([]string(nil), p.MostFrequentValues...)
	out.MostFrequentCounts = append([]int64(nil), p.MostFrequentCounts...)
	out.Bins = append([]Bin(nil), p.Bins...)
	out.Sketch = append([]uint32(nil), p.Sketch...)
	return &out
}
