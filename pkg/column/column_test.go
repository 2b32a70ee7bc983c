package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

func TestFlatMaterializeFails(t *testing.T) {
	c := NewFlat("id", types.Integer, 100)
	assert.Equal(t, "id", c.Name())
	assert.Equal(t, 100, c.Len())

	_, err := c.Materialize()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvariant))
}

func TestConstantMaterialize(t *testing.T) {
	c := NewConstant("flag", types.Boolean, true, 4)

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []any{true, true, true, true}, arr.Values)
}

func TestConstantTransform(t *testing.T) {
	calls := 0
	c := NewConstant("n", types.Integer, int64(10), 1000)
	c.Transform(func(v any) any {
		calls++
		return v.(int64) * 2
	})

	// The stored value is transformed once regardless of length
	assert.Equal(t, 1, calls)

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, int64(20), arr.Values[0])
	assert.Equal(t, int64(20), arr.Values[999])
}

func TestFunctionEvaluatedOnce(t *testing.T) {
	calls := 0
	c := NewFunction("stamp", types.Integer, func(args ...any) (any, error) {
		calls++
		return int64(42), nil
	}, nil, 1000)

	arr, err := c.Materialize()
	require.NoError(t, err)
	require.Equal(t, 1000, arr.Len())
	for _, v := range arr.Values {
		assert.Equal(t, int64(42), v)
	}
	assert.Equal(t, 1, calls, "one evaluation for the whole column")

	// Re-materializing reuses the memo
	_, err = c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFunctionTransformForcesEvaluation(t *testing.T) {
	calls := 0
	c := NewFunction("n", types.Integer, func(args ...any) (any, error) {
		calls++
		return int64(5), nil
	}, nil, 3)

	c.Transform(func(v any) any { return v.(int64) + 1 })
	assert.Equal(t, 1, calls)

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(6), int64(6), int64(6)}, arr.Values)
	assert.Equal(t, 1, calls)
}

func TestDictionaryMaterialize(t *testing.T) {
	c := NewDictionary("color", types.Varchar,
		[]any{"red", "blue", "green"}, []uint32{0, 1, 0, 2, 1})

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []any{"red", "blue", "red", "green", "blue"}, arr.Values)
	assert.Equal(t, 5, c.Len())
}

func TestDictionaryIndexOutOfBounds(t *testing.T) {
	c := NewDictionary("color", types.Varchar, []any{"red"}, []uint32{0, 3})

	_, err := c.Materialize()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvariant))
}

func TestDictionaryTransformTouchesEntriesOnce(t *testing.T) {
	calls := 0
	c := NewDictionary("n", types.Integer,
		[]any{int64(1), int64(2)}, []uint32{0, 1, 0, 1, 0, 1})
	c.Transform(func(v any) any {
		calls++
		return v.(int64) * 10
	})

	// One call per dictionary entry, not per logical row
	assert.Equal(t, 2, calls)

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(10), int64(20), int64(10), int64(20), int64(10), int64(20)}, arr.Values)
}

func TestRLEMaterialize(t *testing.T) {
	c, err := NewRLE("days", types.Integer,
		[]any{int64(31), int64(30), int64(31), int64(30), int64(31)},
		[]int32{1, 1, 2, 1, 4})
	require.NoError(t, err)

	assert.Equal(t, 9, c.Len())

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []any{
		int64(31), int64(30), int64(31), int64(31), int64(30),
		int64(31), int64(31), int64(31), int64(31),
	}, arr.Values)
}

func TestRLEValidation(t *testing.T) {
	tests := []struct {
		name    string
		values  []any
		lengths []int32
	}{
		{"mismatched arrays", []any{int64(1)}, []int32{1, 1}},
		{"zero run length", []any{int64(1), int64(2)}, []int32{1, 0}},
		{"adjacent equal runs", []any{int64(1), int64(1)}, []int32{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRLE("bad", types.Integer, tt.values, tt.lengths)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeInvariant))
		})
	}
}

func TestRLETransformOnRunHeads(t *testing.T) {
	calls := 0
	c, err := NewRLE("n", types.Integer, []any{int64(1), int64(2)}, []int32{500, 500})
	require.NoError(t, err)

	c.Transform(func(v any) any {
		calls++
		return v.(int64) + 100
	})
	assert.Equal(t, 2, calls)

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, int64(101), arr.Values[0])
	assert.Equal(t, int64(102), arr.Values[999])
}

func TestSparseMaterialize(t *testing.T) {
	c, err := NewSparse("score", types.Double,
		[]any{1.5, 2.5}, []int32{1, 3}, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, c.Len())

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []any{nil, 1.5, nil, 2.5, nil}, arr.Values)
}

func TestSparseValidation(t *testing.T) {
	tests := []struct {
		name      string
		values    []any
		positions []int32
		length    int
	}{
		{"mismatched arrays", []any{1.0}, []int32{0, 1}, 3},
		{"positions not ascending", []any{1.0, 2.0}, []int32{2, 1}, 3},
		{"duplicate position", []any{1.0, 2.0}, []int32{1, 1}, 3},
		{"position beyond length", []any{1.0}, []int32{5}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSparse("bad", types.Double, tt.values, tt.positions, tt.length)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeInvariant))
		})
	}
}

func TestSparseFromArrayRoundTrip(t *testing.T) {
	src := types.NewNativeArray(types.Integer, []any{nil, int64(7), nil, nil, int64(9)})
	c, err := SparseFromArray("n", src)
	require.NoError(t, err)

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, src.Values, arr.Values)
}

func TestSparseTransformSkipsNulls(t *testing.T) {
	c, err := NewSparse("n", types.Integer, []any{int64(1)}, []int32{2}, 4)
	require.NoError(t, err)

	c.Transform(func(v any) any { return v.(int64) * 3 })

	arr, err := c.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []any{nil, nil, int64(3), nil}, arr.Values)
}

func TestTransformMaterializeEquivalence(t *testing.T) {
	// transform-then-materialize equals materialize-then-map
	double := func(v any) any { return v.(int64) * 2 }

	build := func() []Column {
		rle, err := NewRLE("n", types.Integer, []any{int64(1), int64(2)}, []int32{2, 3})
		require.NoError(t, err)
		sparse, err := NewSparse("n", types.Integer, []any{int64(4)}, []int32{1}, 3)
		require.NoError(t, err)
		return []Column{
			NewConstant("n", types.Integer, int64(9), 4),
			NewDictionary("n", types.Integer, []any{int64(1), int64(2)}, []uint32{1, 0, 1}),
			rle,
			sparse,
		}
	}

	plain := build()
	transformed := build()

	for i := range plain {
		expected, err := plain[i].Materialize()
		require.NoError(t, err)
		mapped := make([]any, len(expected.Values))
		for j, v := range expected.Values {
			if v == nil {
				continue
			}
			mapped[j] = double(v)
		}

		transformed[i].(Transformable).Transform(double)
		got, err := transformed[i].Materialize()
		require.NoError(t, err)
		assert.Equal(t, mapped, got.Values, "variant %d", i)
	}
}
