package filters

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomSizing(t *testing.T) {
	b, err := NewBloom(1000, 0.01)
	require.NoError(t, err)

	// ~9.6 bits per item at a 1% rate
	assert.Greater(t, b.Bits(), uint32(9000))
	assert.Less(t, b.Bits(), uint32(11000))
	assert.GreaterOrEqual(t, b.Hashes(), uint32(2))
}

func TestBloomRejectsBadParameters(t *testing.T) {
	_, err := NewBloom(0, 0.01)
	require.Error(t, err)
	_, err = NewBloom(-5, 0.01)
	require.Error(t, err)
	_, err = NewBloom(100, 0)
	require.Error(t, err)
	_, err = NewBloom(100, 1)
	require.Error(t, err)
}

func TestBloomNoFalseNegatives(t *testing.T) {
	b, err := NewBloom(500, 0.01)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		b.AddString("key-" + strconv.Itoa(i))
	}
	assert.Equal(t, int64(500), b.Count())

	// Every added key must report possible membership
	for i := 0; i < 500; i++ {
		assert.True(t, b.ContainsString("key-"+strconv.Itoa(i)), "key-%d", i)
	}
}

func TestBloomFalsePositiveRate(t *testing.T) {
	b, err := NewBloom(1000, 0.01)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		b.AddString("member-" + strconv.Itoa(i))
	}

	falsePositives := 0
	probes := 10000
	for i := 0; i < probes; i++ {
		if b.ContainsString("absent-" + strconv.Itoa(i)) {
			falsePositives++
		}
	}

	// Sized for 1%; allow generous slack for hash variance
	assert.Less(t, falsePositives, probes/20)
}

func TestBloomSaturation(t *testing.T) {
	b, err := NewBloom(10, 0.01)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		b.AddString(strconv.Itoa(i))
	}
	assert.False(t, b.Saturated())

	b.AddString("one more")
	assert.True(t, b.Saturated())
}

func TestBloomEmptyContainsNothing(t *testing.T) {
	b, err := NewBloom(100, 0.01)
	require.NoError(t, err)
	assert.False(t, b.ContainsString("anything"))
}
