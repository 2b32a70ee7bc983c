package profile

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Merge combines two profiles of the same column computed over disjoint
// row ranges into one profile covering their union. Merge is pure: both
// inputs are left untouched and the result is freshly allocated.
//
// Exact aggregates (counts, min/max) stay exact. The approximate
// structures combine with deliberate information loss: the transition
// count charges one unobserved boundary step, the frequent-value lists
// keep only labels present in both inputs, the histogram recompacts the
// union of bins, and the sketch truncates the union of kept hashes.
func Merge(a, b *ColumnProfile) (*ColumnProfile, error) {
	if a.Name != b.Name {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"cannot merge profiles of different columns: %s and %s", a.Name, b.Name)
	}
	if !a.Type.Equal(b.Type) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"cannot merge profiles of column %s with types %s and %s", a.Name, a.Type, b.Type)
	}

	out := NewColumnProfile(a.Name, a.Type, Options{
		MFVSize:       DefaultMFVSize,
		HistogramBins: DefaultBins,
		SketchSize:    a.SketchSize(),
	})

	out.Count = a.Count + b.Count
	out.Missing = a.Missing + b.Missing

	out.Minimum = mergeBound(a.Minimum, b.Minimum, types.MinScalar)
	out.Maximum = mergeBound(a.Maximum, b.Maximum, types.MaxScalar)

	out.Ordering = mergeOrdering(a.Ordering, b.Ordering)
	// The step across the batch boundary was never observed, so it is
	// charged as one transition.
	out.Transitions = a.Transitions + b.Transitions + 1

	out.MostFrequentValues, out.MostFrequentCounts = mergeFrequent(a, b)
	out.Bins = mergeBins(a.Bins, b.Bins)
	out.Sketch = mergeSketches(a.Sketch, b.Sketch, out.SketchSize())

	return out, nil
}

// mergeBound picks across a batch boundary, treating a missing bound as
// the identity of the picker. Zero-valued bounds are preserved exactly.
func mergeBound(a, b *types.Scalar, pick func(types.Scalar, types.Scalar) types.Scalar) *types.Scalar {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		v := *b
		return &v
	case b == nil:
		v := *a
		return &v
	default:
		v := pick(*a, *b)
		return &v
	}
}

// mergeOrdering keeps agreement, lets an empty side defer, and demotes
// any disagreement to mixed.
func mergeOrdering(a, b Ordering) Ordering {
	switch {
	case a == b:
		return a
	case a == OrderingUnset:
		return b
	case b == OrderingUnset:
		return a
	default:
		return OrderingMixed
	}
}

// mergeFrequent intersects the two frequent-value lists, summing counts
// for shared labels. A label seen in only one input may have uncounted
// occurrences in the other, so it is dropped rather than under-reported;
// disjoint lists therefore merge to empty.
func mergeFrequent(a, b *ColumnProfile) ([]string, []int64) {
	bCounts := make(map[string]int64, len(b.MostFrequentValues))
	for i, label := range b.MostFrequentValues {
		bCounts[label] = b.MostFrequentCounts[i]
	}

	merged := make(map[string]int64)
	for i, label := range a.MostFrequentValues {
		if bc, ok := bCounts[label]; ok {
			merged[label] = a.MostFrequentCounts[i] + bc
		}
	}
	if len(merged) == 0 {
		return []string{}, []int64{}
	}
	return topFrequent(merged, DefaultMFVSize)
}

// mergeBins recompacts the union of two bin lists through the streaming
// digest, bounded by the larger input's bin count. The larger side seeds
// the digest so the denser shape is the compaction target.
func mergeBins(a, b []Bin) []Bin {
	if len(a) == 0 {
		return append([]Bin(nil), b...)
	}
	if len(b) == 0 {
		return append([]Bin(nil), a...)
	}

	capacity := len(a)
	first, second := a, b
	if len(b) > len(a) {
		capacity = len(b)
		first, second = b, a
	}
	if capacity > DefaultBins {
		capacity = DefaultBins
	}

	d := NewDistogram(capacity)
	d.InsertBins(first)
	d.InsertBins(second)
	return d.Bins()
}

// MergeAll left-folds a batch-ordered sequence of profiles.
func MergeAll(profiles []*ColumnProfile) (*ColumnProfile, error) {
	if len(profiles) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "no profiles to merge")
	}
	acc := profiles[0]
	for _, p := range profiles[1:] {
		next, err := Merge(acc, p)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	if acc == profiles[0] {
		acc = acc.Clone()
	}
	return acc, nil
}
