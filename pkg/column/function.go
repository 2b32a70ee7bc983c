package column

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Function is a column deriving its value from a pure function binding
// plus fixed arguments, repeated length times. The function is evaluated
// exactly once per column instance: the result is held in an explicit
// memo field populated on first materialize and reused afterwards.
type Function struct {
	name   string
	dtype  types.DataType
	fn     func(args ...any) (any, error)
	args   []any
	length int

	memo      any
	evaluated bool
}

// NewFunction creates a function column.
func NewFunction(name string, dtype types.DataType, fn func(args ...any) (any, error), args []any, length int) *Function {
	countEncoded("function")
	return &Function{name: name, dtype: dtype, fn: fn, args: args, length: length}
}

// Name returns the column name.
func (c *Function) Name() string { return c.name }

// Type returns the declared logical type.
func (c *Function) Type() types.DataType { return c.dtype }

// Len returns the logical row count.
func (c *Function) Len() int { return c.length }

// Materialize invokes the function once (on the first call only) and
// repeats the memoized result length times.
func (c *Function) Materialize() (*types.NativeArray, error) {
	if !c.evaluated {
		if c.fn == nil {
			return nil, errors.Newf(errors.ErrorTypeInvariant,
				"function column %s has no binding", c.name)
		}
		result, err := c.fn(c.args...)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeData,
				"function column %s evaluation failed", c.name)
		}
		c.memo = result
		c.evaluated = true
	}

	values := make([]any, c.length)
	for i := range values {
		values[i] = c.memo
	}
	return types.NewNativeArray(c.dtype, values), nil
}

// Transform applies fn to the memoized result, forcing evaluation first if
// the column was never materialized. The stored value is transformed once
// regardless of the logical length.
func (c *Function) Transform(fn func(any) any) {
	if !c.evaluated {
		if c.fn == nil {
			return
		}
		result, err := c.fn(c.args...)
		if err != nil {
			return
		}
		c.memo = result
		c.evaluated = true
	}
	c.memo = fn(c.memo)
}
