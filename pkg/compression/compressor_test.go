package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAllAlgorithms(t *testing.T) {
	payload := bytes.Repeat([]byte("tabular profile export payload "), 100)

	for _, algo := range []Algorithm{None, Gzip, Deflate, Snappy, S2, LZ4, Zstd} {
		t.Run(string(algo), func(t *testing.T) {
			c, err := NewCompressor(&Config{Algorithm: algo, Level: Default})
			require.NoError(t, err)
			assert.Equal(t, algo, c.Algorithm())

			compressed, err := c.Compress(payload)
			require.NoError(t, err)

			decompressed, err := c.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, decompressed)

			if algo != None {
				assert.Less(t, len(compressed), len(payload), "repetitive payload should shrink")
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	algo, err := ParseAlgorithm("zstd")
	require.NoError(t, err)
	assert.Equal(t, Zstd, algo)

	algo, err = ParseAlgorithm("GZIP")
	require.NoError(t, err)
	assert.Equal(t, Gzip, algo)

	_, err = ParseAlgorithm("brotli")
	require.Error(t, err)
}

func TestEmptyPayload(t *testing.T) {
	c, err := NewCompressor(&Config{Algorithm: Zstd, Level: Default})
	require.NoError(t, err)

	compressed, err := c.Compress([]byte{})
	require.NoError(t, err)
	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestCompressorPool(t *testing.T) {
	pool := NewCompressorPool(Config{Algorithm: S2, Level: Default})
	payload := bytes.Repeat([]byte("abc"), 500)

	compressed, err := pool.Compress(payload)
	require.NoError(t, err)
	decompressed, err := pool.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}
