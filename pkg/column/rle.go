package column

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// RLE is a run-length-encoded column: a values array of run-heads plus a
// parallel lengths array. Consecutive run-heads always differ; collapsing
// adjacent equal runs is the encoder's job, enforced at construction.
type RLE struct {
	name    string
	dtype   types.DataType
	values  []any
	lengths []int32
	length  int
}

// NewRLE creates a run-length-encoded column, validating the shape
// invariants: parallel arrays, every run length at least 1, and no two
// adjacent runs sharing a value.
func NewRLE(name string, dtype types.DataType, values []any, lengths []int32) (*RLE, error) {
	if len(values) != len(lengths) {
		return nil, errors.Newf(errors.ErrorTypeInvariant,
			"run-length column %s: %d values but %d lengths", name, len(values), len(lengths))
	}

	total := 0
	for i, n := range lengths {
		if n < 1 {
			return nil, errors.Newf(errors.ErrorTypeInvariant,
				"run-length column %s: run %d has non-positive length %d", name, i, n)
		}
		if i > 0 && values[i] == values[i-1] {
			return nil, errors.Newf(errors.ErrorTypeInvariant,
				"run-length column %s: adjacent runs %d and %d share value %v", name, i-1, i, values[i])
		}
		total += int(n)
	}

	countEncoded("rle")
	return &RLE{name: name, dtype: dtype, values: values, lengths: lengths, length: total}, nil
}

// Name returns the column name.
func (c *RLE) Name() string { return c.name }

// Type returns the declared logical type.
func (c *RLE) Type() types.DataType { return c.dtype }

// Len returns the logical row count, the sum of all run lengths.
func (c *RLE) Len() int { return c.length }

// Runs returns the stored run-heads and lengths.
func (c *RLE) Runs() ([]any, []int32) { return c.values, c.lengths }

// Materialize expands each run into its repeated value, in order.
func (c *RLE) Materialize() (*types.NativeArray, error) {
	values := make([]any, 0, c.length)
	for i, v := range c.values {
		for n := int32(0); n < c.lengths[i]; n++ {
			values = append(values, v)
		}
	}
	return types.NewNativeArray(c.dtype, values), nil
}

// Transform applies fn to each run-head once, not once per logical row.
func (c *RLE) Transform(fn func(any) any) {
	for i, v := range c.values {
		c.values[i] = fn(v)
	}
}
