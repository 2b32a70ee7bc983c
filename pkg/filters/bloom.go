// Package filters implements a classic bloom filter sized from an
// expected item count and target false-positive rate, for fast
// membership pre-checks over column values.
package filters

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Bloom is a fixed-size bloom filter. Not safe for concurrent mutation.
type Bloom struct {
	bits   []uint64
	m      uint32
	k      uint32
	count  int64
	target int64
}

// NewBloom sizes a filter for n expected items at false-positive rate p:
// m = -(n ln p) / (ln 2)^2 bits with at least two hash functions.
func NewBloom(n int64, p float64) (*Bloom, error) {
	if n <= 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"bloom filter needs a positive expected count, got %d", n)
	}
	if p <= 0 || p >= 1 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"bloom filter false-positive rate must be in (0, 1), got %g", p)
	}

	ln2 := math.Ln2
	m := uint32(-(float64(n)*math.Log(p))/(ln2*ln2)) + 1
	k := uint32(math.Round(float64(m) / float64(n) * ln2))
	if k < 2 {
		k = 2
	}

	words := (m + 63) / 64
	return &Bloom{
		bits:   make([]uint64, words),
		m:      m,
		k:      k,
		target: n,
	}, nil
}

// indexes derives the k bit positions for a key via double hashing over
// the two halves of one 64-bit hash.
func (b *Bloom) indexes(key []byte, fn func(uint32)) {
	h := xxhash.Sum64(key)
	h1 := uint32(h)
	h2 := uint32(h>>32) | 1 // odd stride so all k probes differ

	for i := uint32(0); i < b.k; i++ {
		fn((h1 + i*h2) % b.m)
	}
}

// Add inserts a key.
func (b *Bloom) Add(key []byte) {
	b.indexes(key, func(bit uint32) {
		b.bits[bit/64] |= 1 << (bit % 64)
	})
	b.count++
}

// AddString inserts a string key.
func (b *Bloom) AddString(key string) {
	b.Add([]byte(key))
}

// Contains reports whether the key may have been added. False is exact;
// true is probabilistic at the configured rate while the filter holds no
// more than its sized-for count.
func (b *Bloom) Contains(key []byte) bool {
	hit := true
	b.indexes(key, func(bit uint32) {
		if b.bits[bit/64]&(1<<(bit%64)) == 0 {
			hit = false
		}
	})
	return hit
}

// ContainsString reports possible membership of a string key.
func (b *Bloom) ContainsString(key string) bool {
	return b.Contains([]byte(key))
}

// Count returns how many keys have been added.
func (b *Bloom) Count() int64 { return b.count }

// Bits returns the filter size in bits.
func (b *Bloom) Bits() uint32 { return b.m }

// Hashes returns the number of probe positions per key.
func (b *Bloom) Hashes() uint32 { return b.k }

// Saturated reports whether more keys were added than the filter was
// sized for, meaning the false-positive rate is no longer honored.
func (b *Bloom) Saturated() bool { return b.count > b.target }
