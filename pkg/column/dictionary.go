package column

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Dictionary is a column storing each distinct value once plus one
// dictionary index per logical row.
type Dictionary struct {
	name    string
	dtype   types.DataType
	dict    []any
	indices []uint32
}

// NewDictionary creates a dictionary column from an already-encoded
// dictionary and index array. Index bounds are validated lazily at
// materialize time, matching the contract that externally supplied
// invariant violations are fatal there rather than masked.
func NewDictionary(name string, dtype types.DataType, dict []any, indices []uint32) *Dictionary {
	countEncoded("dictionary")
	return &Dictionary{name: name, dtype: dtype, dict: dict, indices: indices}
}

// Name returns the column name.
func (c *Dictionary) Name() string { return c.name }

// Type returns the declared logical type.
func (c *Dictionary) Type() types.DataType { return c.dtype }

// Len returns the logical row count.
func (c *Dictionary) Len() int { return len(c.indices) }

// Dict returns the stored dictionary.
func (c *Dictionary) Dict() []any { return c.dict }

// Indices returns the stored index array.
func (c *Dictionary) Indices() []uint32 { return c.indices }

// Materialize gathers dictionary entries per index. An out-of-bounds
// index is an invariant error.
func (c *Dictionary) Materialize() (*types.NativeArray, error) {
	values := make([]any, len(c.indices))
	for i, idx := range c.indices {
		if int(idx) >= len(c.dict) {
			return nil, errors.Newf(errors.ErrorTypeInvariant,
				"dictionary column %s: index %d at row %d out of range for dictionary of %d",
				c.name, idx, i, len(c.dict))
		}
		values[i] = c.dict[idx]
	}
	return types.NewNativeArray(c.dtype, values), nil
}

// Transform applies fn to each dictionary entry once, not once per
// logical row.
func (c *Dictionary) Transform(fn func(any) any) {
	for i, v := range c.dict {
		c.dict[i] = fn(v)
	}
}
