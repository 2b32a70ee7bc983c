package column

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Sparse is a null-indexed column: only the non-null values are stored,
// each paired with its logical position. Nulls are implicit.
type Sparse struct {
	name      string
	dtype     types.DataType
	values    []any
	positions []int32
	length    int
}

// NewSparse creates a sparse column, validating that positions are
// strictly ascending and within the declared logical length.
func NewSparse(name string, dtype types.DataType, values []any, positions []int32, length int) (*Sparse, error) {
	if len(values) != len(positions) {
		return nil, errors.Newf(errors.ErrorTypeInvariant,
			"sparse column %s: %d values but %d positions", name, len(values), len(positions))
	}

	prev := int32(-1)
	for i, p := range positions {
		if p <= prev {
			return nil, errors.Newf(errors.ErrorTypeInvariant,
				"sparse column %s: positions not strictly ascending at %d (%d after %d)", name, i, p, prev)
		}
		if int(p) >= length {
			return nil, errors.Newf(errors.ErrorTypeInvariant,
				"sparse column %s: position %d outside logical length %d", name, p, length)
		}
		prev = p
	}

	countEncoded("sparse")
	return &Sparse{name: name, dtype: dtype, values: values, positions: positions, length: length}, nil
}

// SparseFromArray builds a sparse column from a dense nullable array by
// dropping the null slots.
func SparseFromArray(name string, arr *types.NativeArray) (*Sparse, error) {
	values := make([]any, 0, len(arr.Values))
	positions := make([]int32, 0, len(arr.Values))
	for i, v := range arr.Values {
		if v != nil {
			values = append(values, v)
			positions = append(positions, int32(i))
		}
	}
	return NewSparse(name, arr.DataType, values, positions, arr.Len())
}

// Name returns the column name.
func (c *Sparse) Name() string { return c.name }

// Type returns the declared logical type.
func (c *Sparse) Type() types.DataType { return c.dtype }

// Len returns the declared logical length, null slots included.
func (c *Sparse) Len() int { return c.length }

// Materialize scatters the stored values into a null-filled array of the
// declared logical length.
func (c *Sparse) Materialize() (*types.NativeArray, error) {
	values := make([]any, c.length)
	for i, p := range c.positions {
		values[p] = c.values[i]
	}
	return types.NewNativeArray(c.dtype, values), nil
}

// Transform applies fn to each stored non-null value once; implicit nulls
// are untouched.
func (c *Sparse) Transform(fn func(any) any) {
	for i, v := range c.values {
		c.values[i] = fn(v)
	}
}
