// Package table implements in-memory relations (schema plus positional
// rows), batch splitting, and the parallel whole-table profiling driver.
package table

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/row"
	"github.com/ajitpratap0/tabular/pkg/schema"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// DefaultBatchSize is the row count a relation is split into for
// parallel profiling.
const DefaultBatchSize = 25000

// Relation is an ordered collection of rows under one schema.
type Relation struct {
	Schema *schema.RelationSchema
	rows   []row.Row
}

// NewRelation creates an empty relation for a schema.
func NewRelation(s *schema.RelationSchema) *Relation {
	return &Relation{Schema: s}
}

// FromRows creates a relation over pre-validated rows. The rows are
// adopted, not copied.
func FromRows(s *schema.RelationSchema, rows []row.Row) *Relation {
	return &Relation{Schema: s, rows: rows}
}

// Len returns the row count.
func (r *Relation) Len() int { return len(r.rows) }

// Name returns the schema name.
func (r *Relation) Name() string { return r.Schema.Name }

// Row returns the row at position i.
func (r *Relation) Row(i int) (row.Row, error) {
	if i < 0 || i >= len(r.rows) {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"row index %d out of range [0, %d)", i, len(r.rows))
	}
	return r.rows[i], nil
}

// Rows returns the backing row slice. Callers must not mutate it.
func (r *Relation) Rows() []row.Row { return r.rows }

// Append validates a row against the schema and adds it.
func (r *Relation) Append(tuple row.Row) error {
	if len(tuple) != r.Schema.NumColumns() {
		return errors.Newf(errors.ErrorTypeValidation,
			"row has %d values, schema %s has %d columns",
			len(tuple), r.Schema.Name, r.Schema.NumColumns())
	}
	for i, c := range r.Schema.Columns {
		if err := c.Validate(tuple[i]); err != nil {
			return err
		}
	}
	r.rows = append(r.rows, tuple)
	return nil
}

// AppendUnchecked adds a row without validation. For callers that have
// already coerced values to the schema's native types.
func (r *Relation) AppendUnchecked(tuple row.Row) {
	r.rows = append(r.rows, tuple)
}

// Slice returns a view over rows [lo, hi) sharing this relation's
// backing storage.
func (r *Relation) Slice(lo, hi int) (*Relation, error) {
	if lo < 0 || hi > len(r.rows) || lo > hi {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"slice [%d, %d) out of range for %d rows", lo, hi, len(r.rows))
	}
	return &Relation{Schema: r.Schema, rows: r.rows[lo:hi]}, nil
}

// Collect gathers one column into a dense nullable native array.
func (r *Relation) Collect(name string) (*types.NativeArray, error) {
	c, idx, err := r.Schema.FindColumn(name)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(r.rows))
	for i, tuple := range r.rows {
		values[i] = tuple[idx]
	}
	return types.NewNativeArray(c.Type, values), nil
}

// Batch is one contiguous row range of a relation.
type Batch struct {
	Index    int
	Relation *Relation
}

// ToBatches splits the relation into contiguous batches of at most
// batchSize rows, preserving row order across batch indices. An empty
// relation yields a single empty batch.
func (r *Relation) ToBatches(batchSize int) []Batch {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if len(r.rows) == 0 {
		return []Batch{{Index: 0, Relation: &Relation{Schema: r.Schema}}}
	}

	n := (len(r.rows) + batchSize - 1) / batchSize
	batches := make([]Batch, 0, n)
	for i := 0; i < n; i++ {
		lo := i * batchSize
		hi := lo + batchSize
		if hi > len(r.rows) {
			hi = len(r.rows)
		}
		batches = append(batches, Batch{
			Index:    i,
			Relation: &Relation{Schema: r.Schema, rows: r.rows[lo:hi]},
		})
	}
	return batches
}
