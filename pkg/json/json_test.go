package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	type record struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}

	in := record{Name: "ada", Score: 9.5}
	data, err := Marshal(in)
	require.NoError(t, err)

	var out record
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestMarshalToWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarshalToWriter(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, strings.TrimSpace(buf.String()))
}

func TestMarshalToBuffer(t *testing.T) {
	buf, err := MarshalToBuffer([]int{1, 2, 3})
	require.NoError(t, err)
	defer PutBuffer(buf)
	assert.Equal(t, "[1,2,3]", strings.TrimSpace(buf.String()))
}

func TestStreamingEncoderJSONL(t *testing.T) {
	var buf bytes.Buffer
	enc := NewStreamingEncoder(&buf, false)
	require.NoError(t, enc.Encode(map[string]int{"n": 1}))
	require.NoError(t, enc.Encode(map[string]int{"n": 2}))
	require.NoError(t, enc.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"n":1}`, lines[0])
	assert.JSONEq(t, `{"n":2}`, lines[1])
}

func TestStreamingEncoderArray(t *testing.T) {
	var buf bytes.Buffer
	enc := NewStreamingEncoder(&buf, true)
	require.NoError(t, enc.Encode(1))
	require.NoError(t, enc.Encode(2))
	require.NoError(t, enc.Close())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "["))
	assert.True(t, strings.HasSuffix(out, "]"))
}
