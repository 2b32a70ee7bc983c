package column

import (
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Constant is a column holding one value repeated length times. Only the
// single value is stored.
type Constant struct {
	name   string
	dtype  types.DataType
	value  any
	length int
}

// NewConstant creates a constant column.
func NewConstant(name string, dtype types.DataType, value any, length int) *Constant {
	countEncoded("constant")
	return &Constant{name: name, dtype: dtype, value: value, length: length}
}

// Name returns the column name.
func (c *Constant) Name() string { return c.name }

// Type returns the declared logical type.
func (c *Constant) Type() types.DataType { return c.dtype }

// Len returns the logical row count.
func (c *Constant) Len() int { return c.length }

// Materialize repeats the stored value length times.
func (c *Constant) Materialize() (*types.NativeArray, error) {
	values := make([]any, c.length)
	for i := range values {
		values[i] = c.value
	}
	return types.NewNativeArray(c.dtype, values), nil
}

// Transform applies fn to the stored value once, not once per logical row.
func (c *Constant) Transform(fn func(any) any) {
	c.value = fn(c.value)
}
