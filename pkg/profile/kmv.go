package profile

import (
	"container/heap"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// hashValue maps a native value to the 32-bit hash space the sketch
// lives in: the low 32 bits of xxhash64 over a canonical byte form.
func hashValue(v any) uint32 {
	var buf [24]byte
	var b []byte

	switch x := v.(type) {
	case string:
		return uint32(xxhash.Sum64String(x))
	case []byte:
		return uint32(xxhash.Sum64(x))
	case int64:
		b = strconv.AppendInt(buf[:0], x, 10)
	case float64:
		b = strconv.AppendFloat(buf[:0], x, 'g', -1, 64)
	case bool:
		b = strconv.AppendBool(buf[:0], x)
	case time.Time:
		b = strconv.AppendInt(buf[:0], x.Unix(), 10)
	case time.Duration:
		b = strconv.AppendInt(buf[:0], int64(x), 10)
	case decimal.Decimal:
		return uint32(xxhash.Sum64String(x.String()))
	default:
		return uint32(xxhash.Sum64String(strconv.Quote(formatValue(v))))
	}

	return uint32(xxhash.Sum64(b))
}

// maxHeap is a max-heap over uint32 hashes, so the largest kept hash is
// always at the root and cheap to evict.
type maxHeap []uint32

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(uint32)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// kmvSketch retains the K smallest distinct hashes observed.
type kmvSketch struct {
	k    int
	heap maxHeap
	seen map[uint32]struct{}
}

func newKMVSketch(k int) *kmvSketch {
	return &kmvSketch{
		k:    k,
		heap: make(maxHeap, 0, k),
		seen: make(map[uint32]struct{}, k),
	}
}

// Add admits a hash if the sketch has room or the hash is smaller than
// the largest kept one. Duplicates are ignored.
func (s *kmvSketch) Add(h uint32) {
	if _, ok := s.seen[h]; ok {
		return
	}

	if len(s.heap) < s.k {
		s.seen[h] = struct{}{}
		heap.Push(&s.heap, h)
		return
	}

	if h < s.heap[0] {
		evicted := heap.Pop(&s.heap).(uint32)
		delete(s.seen, evicted)
		s.seen[h] = struct{}{}
		heap.Push(&s.heap, h)
	}
}

// Values returns the kept hashes sorted ascending.
func (s *kmvSketch) Values() []uint32 {
	out := append([]uint32(nil), s.heap...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// mergeSketches unions two sorted K-smallest-hash sets, re-sorts, and
// truncates to k.
func mergeSketches(a, b []uint32, k int) []uint32 {
	seen := make(map[uint32]struct{}, len(a)+len(b))
	out := make([]uint32, 0, len(a)+len(b))
	for _, h := range a {
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			out = append(out, h)
		}
	}
	for _, h := range b {
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if len(out) > k {
		out = out[:k]
	}
	return out
}
