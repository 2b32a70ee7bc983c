package profile

import (
	"math"
	"sort"
)

// Distogram is a bounded-capacity streaming histogram: a sorted list of
// (centroid, count) bins supporting incremental insertion and pairwise
// merging while retaining an approximate bin-count-weighted shape.
// Compaction merges the two closest bins into their count-weighted
// centroid, after Ben-Haim/Tom-Tov.
type Distogram struct {
	bins     []Bin
	capacity int
}

// NewDistogram creates a digest bounded to capacity bins.
func NewDistogram(capacity int) *Distogram {
	if capacity < 2 {
		capacity = 2
	}
	return &Distogram{
		bins:     make([]Bin, 0, capacity+1),
		capacity: capacity,
	}
}

// Insert adds a weighted value, compacting when the bound is exceeded.
func (d *Distogram) Insert(value float64, count int64) {
	if count <= 0 {
		return
	}

	idx := sort.Search(len(d.bins), func(i int) bool { return d.bins[i].Value >= value })
	if idx < len(d.bins) && d.bins[idx].Value == value {
		d.bins[idx].Count += count
		return
	}

	d.bins = append(d.bins, Bin{})
	copy(d.bins[idx+1:], d.bins[idx:])
	d.bins[idx] = Bin{Value: value, Count: count}

	d.compact()
}

// Merge folds another digest into this one.
func (d *Distogram) Merge(o *Distogram) {
	for _, b := range o.bins {
		d.Insert(b.Value, b.Count)
	}
}

// InsertBins loads a bin list into the digest.
func (d *Distogram) InsertBins(bins []Bin) {
	for _, b := range bins {
		d.Insert(b.Value, b.Count)
	}
}

// compact merges the two closest adjacent bins until the bound holds.
func (d *Distogram) compact() {
	for len(d.bins) > d.capacity {
		closest := 0
		gap := math.Inf(1)
		for i := 0; i < len(d.bins)-1; i++ {
			if g := d.bins[i+1].Value - d.bins[i].Value; g < gap {
				gap = g
				closest = i
			}
		}

		a, b := d.bins[closest], d.bins[closest+1]
		total := a.Count + b.Count
		merged := Bin{
			Value: (a.Value*float64(a.Count) + b.Value*float64(b.Count)) / float64(total),
			Count: total,
		}

		d.bins[closest] = merged
		d.bins = append(d.bins[:closest+1], d.bins[closest+2:]...)
	}
}

// Bins returns the digest's bins in ascending value order.
func (d *Distogram) Bins() []Bin {
	return append([]Bin(nil), d.bins...)
}

// equalWidthBins bins values into at most binCount equal-width buckets
// over [min, max], keeping only non-empty buckets as (left-edge, count)
// pairs. A single-valued input produces one bin.
func equalWidthBins(values []float64, min, max float64, binCount int) []Bin {
	if len(values) == 0 {
		return nil
	}
	if min == max {
		return []Bin{{Value: min, Count: int64(len(values))}}
	}

	width := (max - min) / float64(binCount)
	counts := make([]int64, binCount)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= binCount {
			idx = binCount - 1 // max lands in the last bucket
		}
		counts[idx]++
	}

	bins := make([]Bin, 0, binCount)
	for i, c := range counts {
		if c > 0 {
			bins = append(bins, Bin{Value: min + float64(i)*width, Count: c})
		}
	}
	return bins
}
