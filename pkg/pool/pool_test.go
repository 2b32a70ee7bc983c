package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedPoolResetOnPut(t *testing.T) {
	type scratch struct{ n int }

	p := New(
		func() *scratch { return &scratch{} },
		func(s *scratch) { s.n = 0 },
	)

	s := p.Get()
	s.n = 42
	p.Put(s)

	reused := p.Get()
	assert.Equal(t, 0, reused.n)
	p.Put(reused)
}

func TestPoolStats(t *testing.T) {
	p := New(func() int { return 7 }, nil)

	v := p.Get()
	assert.Equal(t, 7, v)

	allocated, inUse, hits := p.Stats()
	assert.GreaterOrEqual(t, allocated, int64(1))
	assert.Equal(t, int64(1), inUse)
	assert.Equal(t, int64(1), hits)

	p.Put(v)
	_, inUse, _ = p.Stats()
	assert.Equal(t, int64(0), inUse)
}

func TestSlicePoolsReturnEmpty(t *testing.T) {
	ints := GetInt64Slice()
	assert.Empty(t, ints)
	ints = append(ints, 1, 2, 3)
	PutInt64Slice(ints)
	assert.Empty(t, GetInt64Slice())

	strs := GetStringSlice()
	assert.Empty(t, strs)
	PutStringSlice(append(strs, "a"))

	bytes := GetByteSlice()
	assert.Empty(t, bytes)
	PutByteSlice(append(bytes, 0x10))
}

func TestBufferPoolBuckets(t *testing.T) {
	p := NewBufferPool()

	buf := p.Get(1000)
	require.Len(t, buf, 1000)
	assert.Equal(t, 1024, cap(buf))
	p.Put(buf)

	huge := p.Get(32 << 20)
	assert.Len(t, huge, 32<<20)
	p.Put(huge)
}
