package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistogramInsertWithinCapacity(t *testing.T) {
	d := NewDistogram(10)
	d.Insert(3, 1)
	d.Insert(1, 2)
	d.Insert(2, 1)
	d.Insert(1, 1) // merges into the existing bin

	bins := d.Bins()
	require.Len(t, bins, 3)
	assert.Equal(t, Bin{Value: 1, Count: 3}, bins[0])
	assert.Equal(t, Bin{Value: 2, Count: 1}, bins[1])
	assert.Equal(t, Bin{Value: 3, Count: 1}, bins[2])
}

func TestDistogramCompaction(t *testing.T) {
	d := NewDistogram(4)
	for i := 0; i < 100; i++ {
		d.Insert(float64(i), 1)
	}

	bins := d.Bins()
	require.Len(t, bins, 4)

	total := int64(0)
	for i, b := range bins {
		total += b.Count
		if i > 0 {
			assert.Less(t, bins[i-1].Value, b.Value)
		}
	}
	assert.Equal(t, int64(100), total)
}

func TestDistogramMergedCentroidIsWeighted(t *testing.T) {
	d := NewDistogram(2)
	d.Insert(0, 1)
	d.Insert(10, 1)
	d.Insert(11, 3) // closest pair is (10,1) and (11,3)

	bins := d.Bins()
	require.Len(t, bins, 2)
	assert.Equal(t, float64(0), bins[0].Value)
	assert.InDelta(t, 10.75, bins[1].Value, 1e-9)
	assert.Equal(t, int64(4), bins[1].Count)
}

func TestDistogramIgnoresNonPositiveCounts(t *testing.T) {
	d := NewDistogram(5)
	d.Insert(1, 0)
	d.Insert(2, -3)
	assert.Empty(t, d.Bins())
}

func TestDistogramMerge(t *testing.T) {
	a := NewDistogram(5)
	a.Insert(1, 2)
	a.Insert(2, 1)

	b := NewDistogram(5)
	b.Insert(2, 4)
	b.Insert(9, 1)

	a.Merge(b)
	bins := a.Bins()
	require.Len(t, bins, 3)
	assert.Equal(t, Bin{Value: 2, Count: 5}, bins[1])
}

func TestEqualWidthBins(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := equalWidthBins(values, 0, 10, 5)

	total := int64(0)
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, int64(len(values)), total)
	assert.LessOrEqual(t, len(bins), 5)

	// The maximum lands in the last bucket, not a phantom extra one
	assert.Equal(t, int64(3), bins[len(bins)-1].Count) // 8, 9, 10
}

func TestEqualWidthBinsDropsEmptyBuckets(t *testing.T) {
	bins := equalWidthBins([]float64{0, 100}, 0, 100, 10)
	require.Len(t, bins, 2)
	assert.Equal(t, int64(1), bins[0].Count)
	assert.Equal(t, int64(1), bins[1].Count)
}

func TestKMVSketchAdmission(t *testing.T) {
	s := newKMVSketch(4)
	for _, h := range []uint32{50, 10, 90, 30} {
		s.Add(h)
	}
	assert.Equal(t, []uint32{10, 30, 50, 90}, s.Values())

	// A smaller hash evicts the current maximum
	s.Add(20)
	assert.Equal(t, []uint32{10, 20, 30, 50}, s.Values())

	// A larger hash is rejected at capacity
	s.Add(95)
	assert.Equal(t, []uint32{10, 20, 30, 50}, s.Values())

	// Duplicates never double-count
	s.Add(10)
	assert.Equal(t, []uint32{10, 20, 30, 50}, s.Values())
}

func TestMergeSketchesTruncates(t *testing.T) {
	a := []uint32{1, 3, 5}
	b := []uint32{2, 3, 4}
	assert.Equal(t, []uint32{1, 2, 3, 4}, mergeSketches(a, b, 4))
	assert.Equal(t, []uint32{1, 2}, mergeSketches(a, b, 2))
}
