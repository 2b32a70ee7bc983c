// Package strings provides high-performance, zero-copy string utilities with pooling for Tabular
package strings

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// BytesToString converts byte slice to string without allocation
// WARNING: The returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return *(*string)(unsafe.Pointer(&b))
}

// StringToBytes converts string to byte slice without allocation
// WARNING: The returned byte slice shares memory with the string.
// Do not modify the returned slice.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	sh := (*reflect.StringHeader)(unsafe.Pointer(&s))
	bh := reflect.SliceHeader{
		Data: sh.Data,
		Len:  sh.Len,
		Cap:  sh.Len,
	}
	return *(*[]byte)(unsafe.Pointer(&bh))
}

// Builder provides efficient string building with zero-copy operations
type Builder struct {
	buf []byte
}

// NewBuilder creates a new string builder
func NewBuilder(capacity int) *Builder {
	return &Builder{
		buf: make([]byte, 0, capacity),
	}
}

// WriteString appends a string to the builder
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, StringToBytes(s)...)
}

// WriteBytes appends bytes to the builder
func (b *Builder) WriteBytes(data []byte) {
	b.buf = append(b.buf, data...)
}

// WriteByte appends a single byte
func (b *Builder) WriteByte(c byte) {
	b.buf = append(b.buf, c)
}

// Write implements io.Writer interface
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns the built string using zero-copy conversion
func (b *Builder) String() string {
	return BytesToString(b.buf)
}

// Bytes returns the underlying byte slice
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the length of the built string
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset resets the builder for reuse
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Grow grows the buffer capacity
func (b *Builder) Grow(n int) {
	if cap(b.buf)-len(b.buf) < n {
		newSize := len(b.buf) + 2*cap(b.buf) + n
		newBuf := make([]byte, len(b.buf), newSize)
		copy(newBuf, b.buf)
		b.buf = newBuf
	}
}

// Clone creates a copy of a string (useful when you need to own the memory)
func Clone(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, len(s))
	copy(b, StringToBytes(s))
	return BytesToString(b)
}

// Compare compares two strings without allocation
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Join joins strings using a delimiter with minimal allocations
func Join(strings []string, delimiter string) string {
	if len(strings) == 0 {
		return ""
	}
	if len(strings) == 1 {
		return strings[0]
	}

	// Calculate total length
	totalLen := 0
	for _, s := range strings {
		totalLen += len(s)
	}
	totalLen += (len(strings) - 1) * len(delimiter)

	// Build result
	builder := NewBuilder(totalLen)
	builder.WriteString(strings[0])

	for i := 1; i < len(strings); i++ {
		builder.WriteString(delimiter)
		builder.WriteString(strings[i])
	}

	return builder.String()
}

// Intern provides string interning to reduce memory usage. The CSV
// loader uses it so repeated cells in low-cardinality columns are
// stored once.
type Intern struct {
	strings map[string]string
}

// NewIntern creates a new string interner
func NewIntern() *Intern {
	return &Intern{
		strings: make(map[string]string),
	}
}

// Get returns an interned version of the string
func (intern *Intern) Get(s string) string {
	if interned, exists := intern.strings[s]; exists {
		return interned
	}

	// Clone the string to ensure we own the memory
	cloned := Clone(s)
	intern.strings[cloned] = cloned
	return cloned
}

// Size returns the number of interned strings
func (intern *Intern) Size() int {
	return len(intern.strings)
}

// Clear removes all interned strings
func (intern *Intern) Clear() {
	intern.strings = make(map[string]string)
}

// ========== Pooled String Building System ==========

// Global pools for different string building scenarios
var (
	// Small strings (< 1KB) - most common case
	smallBuilderPool = &sync.Pool{
		New: func() interface{} {
			return NewBuilder(1024) // 1KB
		},
	}

	// Medium strings (1KB - 16KB) - rendered tables, profile exports
	mediumBuilderPool = &sync.Pool{
		New: func() interface{} {
			return NewBuilder(16 * 1024) // 16KB
		},
	}

	// Large strings (16KB+) - whole-relation renders
	largeBuilderPool = &sync.Pool{
		New: func() interface{} {
			return NewBuilder(64 * 1024) // 64KB
		},
	}
)

// BuilderSize represents different builder sizes
type BuilderSize int

const (
	Small  BuilderSize = iota // < 1KB
	Medium                    // 1KB - 16KB
	Large                     // 16KB+
)

// GetBuilder retrieves a pooled builder of the specified size
func GetBuilder(size BuilderSize) *Builder {
	var pool *sync.Pool
	switch size {
	case Small:
		pool = smallBuilderPool
	case Medium:
		pool = mediumBuilderPool
	case Large:
		pool = largeBuilderPool
	default:
		pool = smallBuilderPool
	}

	builder := pool.Get().(*Builder)
	builder.Reset()
	return builder
}

// PutBuilder returns a builder to the appropriate pool
func PutBuilder(builder *Builder, size BuilderSize) {
	if builder == nil {
		return
	}

	var pool *sync.Pool
	switch size {
	case Small:
		pool = smallBuilderPool
	case Medium:
		pool = mediumBuilderPool
	case Large:
		pool = largeBuilderPool
	default:
		pool = smallBuilderPool
	}

	builder.Reset()
	pool.Put(builder)
}

// Concat efficiently concatenates strings using pooled builder
func Concat(strings ...string) string {
	if len(strings) == 0 {
		return ""
	}
	if len(strings) == 1 {
		return strings[0]
	}

	// Calculate total length to choose appropriate pool
	totalLen := 0
	for _, s := range strings {
		totalLen += len(s)
	}

	size := Small
	if totalLen > 16*1024 {
		size = Large
	} else if totalLen > 1024 {
		size = Medium
	}

	builder := GetBuilder(size)
	defer PutBuilder(builder, size)

	for _, s := range strings {
		builder.WriteString(s)
	}

	return Clone(builder.String())
}

// Sprintf provides a pooled alternative to fmt.Sprintf
func Sprintf(format string, args ...interface{}) string {
	// For simple cases, use direct concatenation
	if len(args) == 0 {
		return format
	}

	// Estimate size based on format string and args
	estimatedSize := len(format) + len(args)*16 // rough estimate

	size := Small
	if estimatedSize > 16*1024 {
		size = Large
	} else if estimatedSize > 1024 {
		size = Medium
	}

	builder := GetBuilder(size)
	defer PutBuilder(builder, size)

	// Use fmt to write to our builder
	fmt.Fprintf(builder, format, args...)

	return Clone(builder.String())
}

// ========== Specialized String Builders ==========

// CSVBuilder builds CSV output efficiently. Profile exports use it to
// emit one row per column statistic without intermediate allocations.
type CSVBuilder struct {
	builder *Builder
	size    BuilderSize
}

// NewCSVBuilder creates a builder sized for the expected output
func NewCSVBuilder(estimatedRows, estimatedCols int) *CSVBuilder {
	estimated := estimatedRows * estimatedCols * 16

	size := Small
	if estimated > 16*1024 {
		size = Large
	} else if estimated > 1024 {
		size = Medium
	}

	return &CSVBuilder{
		builder: GetBuilder(size),
		size:    size,
	}
}

// WriteHeader writes the CSV header row
func (cb *CSVBuilder) WriteHeader(headers []string) {
	for i, header := range headers {
		if i > 0 {
			cb.builder.WriteByte(',')
		}
		cb.writeCSVField(header)
	}
	cb.builder.WriteByte('\n')
}

// WriteRow writes a data row
func (cb *CSVBuilder) WriteRow(fields []string) {
	for i, field := range fields {
		if i > 0 {
			cb.builder.WriteByte(',')
		}
		cb.writeCSVField(field)
	}
	cb.builder.WriteByte('\n')
}

// writeCSVField writes a single field, quoting when necessary
func (cb *CSVBuilder) writeCSVField(field string) {
	needsQuoting := false
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuoting = true
			break
		}
	}

	if !needsQuoting {
		cb.builder.WriteString(field)
		return
	}

	cb.builder.WriteByte('"')
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == '"' {
			cb.builder.WriteByte('"')
		}
		cb.builder.WriteByte(c)
	}
	cb.builder.WriteByte('"')
}

// String returns the built CSV document
func (cb *CSVBuilder) String() string {
	return Clone(cb.builder.String())
}

// Close returns the underlying builder to its pool
func (cb *CSVBuilder) Close() {
	PutBuilder(cb.builder, cb.size)
	cb.builder = nil
}
