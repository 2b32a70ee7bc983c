// Package compression provides algorithm-selectable compression for Tabular
// with configurable levels and pooled compressor instances. Profile exports
// and columnar file interchange use it to shrink output.
//
// # Algorithm Selection
//
// Choose algorithms based on your requirements:
//   - Snappy/S2: best for speed, moderate compression
//   - LZ4: extremely fast, decent compression
//   - Zstd: best compression ratio, good speed
//   - Gzip/Deflate: wide compatibility, good compression
//
// # Basic Usage
//
//	comp, err := compression.NewCompressor(&compression.Config{
//	    Algorithm: compression.Zstd,
//	    Level:     compression.Default,
//	})
//	compressed, err := comp.Compress(data)
//	original, err := comp.Decompress(compressed)
package compression

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Snappy represents snappy compression
	Snappy Algorithm = "snappy"
	// LZ4 represents lz4 compression
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
	// S2 represents s2 compression (Snappy compatible)
	S2 Algorithm = "s2"
	// Deflate represents deflate compression
	Deflate Algorithm = "deflate"
)

// Level represents compression level, controlling the trade-off between
// compression speed and compression ratio.
type Level int

const (
	// Fastest prioritizes speed over compression ratio
	Fastest Level = 1
	// Default balances speed and compression
	Default Level = 5
	// Better improves compression at cost of speed
	Better Level = 7
	// Best maximizes compression ratio
	Best Level = 9
)

// Config configures a compressor.
type Config struct {
	Algorithm Algorithm
	Level     Level
}

// Compressor provides compression and decompression functionality.
// All implementations are safe for concurrent use.
type Compressor interface {
	// Compress compresses data and returns the compressed bytes.
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data and returns the original bytes.
	Decompress(data []byte) ([]byte, error)

	// Algorithm returns the algorithm this compressor implements.
	Algorithm() Algorithm
}

// NewCompressor creates a compressor for the configured algorithm.
func NewCompressor(config *Config) (Compressor, error) {
	if config == nil {
		config = &Config{Algorithm: None}
	}

	switch config.Algorithm {
	case None, "":
		return &noneCompressor{}, nil
	case Gzip:
		return &gzipCompressor{level: gzipLevel(config.Level)}, nil
	case Deflate:
		return &deflateCompressor{level: gzipLevel(config.Level)}, nil
	case Snappy:
		return &snappyCompressor{}, nil
	case S2:
		return &s2Compressor{}, nil
	case LZ4:
		return &lz4Compressor{}, nil
	case Zstd:
		return newZstdCompressor(config.Level)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", config.Algorithm)
	}
}

// ParseAlgorithm converts a string to an Algorithm, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(s)); a {
	case None, Gzip, Snappy, LZ4, Zstd, S2, Deflate:
		return a, nil
	case "":
		return None, nil
	default:
		return None, errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", s)
	}
}

func gzipLevel(l Level) int {
	switch {
	case l <= Fastest:
		return gzip.BestSpeed
	case l >= Best:
		return gzip.BestCompression
	default:
		return gzip.DefaultCompression
	}
}

type noneCompressor struct{}

func (c *noneCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (c *noneCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }
func (c *noneCompressor) Algorithm() Algorithm                   { return None }

type gzipCompressor struct {
	level int
}

func (c *gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "gzip writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "gzip compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "gzip close")
	}
	return buf.Bytes(), nil
}

func (c *gzipCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip reader")
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip decompress")
	}
	return out, nil
}

func (c *gzipCompressor) Algorithm() Algorithm { return Gzip }

type deflateCompressor struct {
	level int
}

func (c *deflateCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, c.level)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "deflate writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "deflate compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "deflate close")
	}
	return buf.Bytes(), nil
}

func (c *deflateCompressor) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "deflate decompress")
	}
	return out, nil
}

func (c *deflateCompressor) Algorithm() Algorithm { return Deflate }

type snappyCompressor struct{}

func (c *snappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (c *snappyCompressor) Decompress(data []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "snappy decompress")
	}
	return out, nil
}

func (c *snappyCompressor) Algorithm() Algorithm { return Snappy }

type s2Compressor struct{}

func (c *s2Compressor) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (c *s2Compressor) Decompress(data []byte) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "s2 decompress")
	}
	return out, nil
}

func (c *s2Compressor) Algorithm() Algorithm { return S2 }

type lz4Compressor struct{}

func (c *lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "lz4 compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "lz4 close")
	}
	return buf.Bytes(), nil
}

func (c *lz4Compressor) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "lz4 decompress")
	}
	return out, nil
}

func (c *lz4Compressor) Algorithm() Algorithm { return LZ4 }

type zstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	mu      sync.Mutex
}

func newZstdCompressor(level Level) (*zstdCompressor, error) {
	var zl zstd.EncoderLevel
	switch {
	case level <= Fastest:
		zl = zstd.SpeedFastest
	case level >= Best:
		zl = zstd.SpeedBestCompression
	case level >= Better:
		zl = zstd.SpeedBetterCompression
	default:
		zl = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zl))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "zstd encoder")
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "zstd decoder")
	}

	return &zstdCompressor{encoder: encoder, decoder: decoder}, nil
}

func (c *zstdCompressor) Compress(data []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encoder.EncodeAll(data, nil), nil
}

func (c *zstdCompressor) Decompress(data []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "zstd decompress")
	}
	return out, nil
}

func (c *zstdCompressor) Algorithm() Algorithm { return Zstd }

// CompressorPool pools compressor instances for one configuration.
type CompressorPool struct {
	pool sync.Pool
	cfg  Config
}

// NewCompressorPool creates a pool of compressors with the given config.
func NewCompressorPool(cfg Config) *CompressorPool {
	cp := &CompressorPool{cfg: cfg}
	cp.pool.New = func() interface{} {
		c, err := NewCompressor(&cp.cfg)
		if err != nil {
			return nil
		}
		return c
	}
	return cp
}

// Compress compresses data using a pooled compressor.
func (cp *CompressorPool) Compress(data []byte) ([]byte, error) {
	c, _ := cp.pool.Get().(Compressor)
	if c == nil {
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", cp.cfg.Algorithm)
	}
	defer cp.pool.Put(c)
	return c.Compress(data)
}

// Decompress decompresses data using a pooled compressor.
func (cp *CompressorPool) Decompress(data []byte) ([]byte, error) {
	c, _ := cp.pool.Get().(Compressor)
	if c == nil {
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", cp.cfg.Algorithm)
	}
	defer cp.pool.Put(c)
	return c.Decompress(data)
}
