package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

func TestRLEEncodeAnyDispatch(t *testing.T) {
	values, lengths, err := RLEEncodeAny([]int32{7, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 8}, values)
	assert.Equal(t, []int32{2, 1}, lengths)

	decoded, err := RLEDecodeAny(values, lengths)
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 7, 8}, decoded)
}

func TestRLEEncodeAnyRejectsFloats(t *testing.T) {
	_, _, err := RLEEncodeAny([]float64{1.5, 1.5})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupportedType))
	assert.Contains(t, err.Error(), "[]float64")
}

func TestRLEDecodeAnyRejectsUnsupported(t *testing.T) {
	_, err := RLEDecodeAny([]string{"a"}, []int32{1})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupportedType))
}

func TestDictEncodeAnyDispatch(t *testing.T) {
	dictionary, indices, err := DictEncodeAny([]string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dictionary)
	assert.Equal(t, []uint32{0, 1, 0}, indices)

	decoded, err := DictDecodeAny(dictionary, indices)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a"}, decoded)
}

func TestDictEncodeAnyRejectsFloats(t *testing.T) {
	_, _, err := DictEncodeAny([]float32{1, 2})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupportedType))
	assert.Contains(t, err.Error(), "[]float32")
}
