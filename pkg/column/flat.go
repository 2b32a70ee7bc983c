package column

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Flat is a descriptor-only column: the row container owns its values, so
// direct materialization is undefined here.
type Flat struct {
	name   string
	dtype  types.DataType
	length int
}

// NewFlat creates a flat column descriptor.
func NewFlat(name string, dtype types.DataType, length int) *Flat {
	return &Flat{name: name, dtype: dtype, length: length}
}

// Name returns the column name.
func (c *Flat) Name() string { return c.name }

// Type returns the declared logical type.
func (c *Flat) Type() types.DataType { return c.dtype }

// Len returns the logical row count.
func (c *Flat) Len() int { return c.length }

// Materialize always fails: flat columns delegate materialization to the
// table container.
func (c *Flat) Materialize() (*types.NativeArray, error) {
	return nil, errors.Newf(errors.ErrorTypeInvariant,
		"cannot materialize a flat column directly: %s", c.name)
}
