package row

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

func TestRowMap(t *testing.T) {
	r := Row{int64(1), "bob", nil}

	m, err := r.Map([]string{"id", "name", "score"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(1), "name": "bob", "score": nil}, m)

	_, err = r.Map([]string{"id"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestRowFrameLayout(t *testing.T) {
	r := Row{"x", float64(2)}

	frame, err := r.Bytes()
	require.NoError(t, err)

	// Marker bytes then a big-endian payload size
	assert.Equal(t, byte(0x10), frame[0])
	assert.Equal(t, byte(0x00), frame[1])
	size := binary.BigEndian.Uint32(frame[2:6])
	assert.Equal(t, int(size), len(frame)-headerSize)
}

func TestRowFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		row  Row
	}{
		{"mixed values", Row{float64(1), "two", true, nil}},
		{"empty row", Row{}},
		{"nested", Row{[]any{float64(1), float64(2)}, map[string]any{"k": "v"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := tt.row.Bytes()
			require.NoError(t, err)

			decoded, err := FromBytes(frame)
			require.NoError(t, err)
			assert.Equal(t, tt.row, decoded)
		})
	}
}

func TestFromBytesErrors(t *testing.T) {
	valid, err := Row{"x"}.Bytes()
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, err := FromBytes(valid[:3])
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
	})

	t.Run("bad marker", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[0] = 0x42
		_, err := FromBytes(bad)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
	})

	t.Run("size mismatch", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.BigEndian.PutUint32(bad[2:6], 999)
		_, err := FromBytes(bad)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
	})
}

func TestFrameSizeLimit(t *testing.T) {
	big := make([]byte, MaxFrameSize+1)
	r := Row{string(big)}

	_, err := r.Bytes()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestWriteReadStream(t *testing.T) {
	var buf bytes.Buffer

	rows := []Row{
		{float64(1), "a"},
		{float64(2), "b"},
		{float64(3), nil},
	}
	for _, r := range rows {
		_, err := r.WriteTo(&buf)
		require.NoError(t, err)
	}

	var decoded []Row
	for {
		r, err := ReadFrom(&buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		decoded = append(decoded, r)
	}
	assert.Equal(t, rows, decoded)
}
