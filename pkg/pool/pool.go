// Package pool provides type-safe object pooling for Tabular.
// It offers a generic Pool[T] built on sync.Pool plus pre-configured
// global pools for the slice types the codec kernels and profilers use
// as scratch space, reducing garbage collection pressure on hot paths.
//
// Example usage:
//
//	buf := pool.GetInt64Slice()
//	defer pool.PutInt64Slice(buf)
//
//	// Using custom pools
//	myPool := pool.New(
//	    func() *MyType { return &MyType{} },
//	    func(obj *MyType) { obj.Reset() },
//	)
//	obj := myPool.Get()
//	defer myPool.Put(obj)
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool represents a generic object pool with type safety.
// It wraps sync.Pool with statistics tracking and automatic reset.
// The pool is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	new   func() T
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
	}
}

// New creates a new typed pool with custom allocation and reset functions.
// The new function is called when the pool is empty. The reset function,
// if non-nil, is called before returning an object to the pool.
func New[T any](new func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{
		new:   new,
		reset: reset,
	}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return new()
	}
	return p
}

// Get retrieves an object from the pool, creating one if the pool is empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	obj := p.pool.Get().(T)
	atomic.AddInt64(&p.stats.hits, 1)
	return obj
}

// Put returns an object to the pool for reuse, resetting it first if a
// reset function was provided.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns current pool statistics.
func (p *Pool[T]) Stats() (allocated, inUse, hits int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits)
}

// Global pools for the slice types used as codec and profiler scratch space.
var (
	// Int64SlicePool pools []int64 scratch buffers used by the numeric
	// profilers and the run-length kernels.
	Int64SlicePool = New(
		func() []int64 {
			return make([]int64, 0, 1024)
		},
		func(s []int64) {
			// length reset happens in GetInt64Slice
		},
	)

	// Float64SlicePool pools []float64 scratch buffers used by the
	// histogram binning pass.
	Float64SlicePool = New(
		func() []float64 {
			return make([]float64, 0, 1024)
		},
		func(s []float64) {
		},
	)

	// StringSlicePool pools []string slices used when collecting
	// most-frequent-value labels.
	StringSlicePool = New(
		func() []string {
			return make([]string, 0, 64)
		},
		func(s []string) {
			for i := range s {
				s[i] = ""
			}
		},
	)

	// ByteSlicePool pools general-purpose byte slices (row framing,
	// compressed exports).
	ByteSlicePool = New(
		func() []byte {
			return make([]byte, 0, 1024)
		},
		func(b []byte) {
		},
	)
)

// GetInt64Slice retrieves an int64 slice from the global pool with zero length.
func GetInt64Slice() []int64 {
	return Int64SlicePool.Get()[:0]
}

// PutInt64Slice returns an int64 slice to the global pool.
func PutInt64Slice(s []int64) {
	if s != nil {
		Int64SlicePool.Put(s)
	}
}

// GetFloat64Slice retrieves a float64 slice from the global pool with zero length.
func GetFloat64Slice() []float64 {
	return Float64SlicePool.Get()[:0]
}

// PutFloat64Slice returns a float64 slice to the global pool.
func PutFloat64Slice(s []float64) {
	if s != nil {
		Float64SlicePool.Put(s)
	}
}

// GetStringSlice retrieves a string slice from the global pool with zero length.
func GetStringSlice() []string {
	return StringSlicePool.Get()[:0]
}

// PutStringSlice returns a string slice to the global pool.
func PutStringSlice(s []string) {
	if s != nil {
		StringSlicePool.Put(s)
	}
}

// GetByteSlice retrieves a byte slice from the global pool with zero length.
func GetByteSlice() []byte {
	return ByteSlicePool.Get()[:0]
}

// PutByteSlice returns a byte slice to the global pool.
func PutByteSlice(b []byte) {
	if b != nil {
		ByteSlicePool.Put(b)
	}
}

// BufferPool manages byte buffer pooling with size-based buckets.
// It maintains multiple pools for different buffer sizes, automatically
// selecting the appropriate pool based on requested size.
type BufferPool struct {
	pools []*Pool[[]byte]
	sizes []int
}

// NewBufferPool creates a buffer pool with power-of-2 size buckets from
// 512 bytes to 16MB. Buffers larger than 16MB are allocated directly.
func NewBufferPool() *BufferPool {
	sizes := []int{
		512,
		1024,
		4096,
		16384,
		65536,
		262144,
		1048576,
		4194304,
		16777216,
	}

	pools := make([]*Pool[[]byte], len(sizes))
	for i, size := range sizes {
		size := size
		pools[i] = New(
			func() []byte {
				return make([]byte, size)
			},
			func(b []byte) {
			},
		)
	}

	return &BufferPool{
		pools: pools,
		sizes: sizes,
	}
}

// Get returns a buffer of at least the requested size from the pool.
// The returned buffer's length is set to the requested size.
func (p *BufferPool) Get(size int) []byte {
	for i, s := range p.sizes {
		if s >= size {
			buf := p.pools[i].Get()
			return buf[:size]
		}
	}

	// Fallback to allocation for very large buffers
	return make([]byte, size)
}

// Put returns a buffer to the pool for reuse. Buffers that don't match
// any pool size are released to garbage collection.
func (p *BufferPool) Put(buf []byte) {
	size := cap(buf)

	for i, s := range p.sizes {
		if s == size {
			p.pools[i].Put(buf[:s])
			return
		}
	}
}

// GlobalBufferPool provides size-based byte buffer pooling for I/O paths.
var GlobalBufferPool = NewBufferPool()
