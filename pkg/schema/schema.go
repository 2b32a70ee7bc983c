// Package schema models relation schemas: ordered, named, typed column
// descriptors with alias lookup, row validation, and schema combination.
package schema

import (
	"sort"
	"strings"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// FlatColumn describes one column of a relation.
type FlatColumn struct {
	Name        string         `json:"name" yaml:"name"`
	Type        types.DataType `json:"type" yaml:"type"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Aliases     []string       `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Nullable    bool           `json:"nullable" yaml:"nullable"`
}

// Matches reports whether name refers to this column by name or alias.
// Matching is case-insensitive.
func (c *FlatColumn) Matches(name string) bool {
	if strings.EqualFold(c.Name, name) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// Validate checks a single value against the column's type and
// nullability.
func (c *FlatColumn) Validate(v any) error {
	if v == nil {
		if !c.Nullable {
			return errors.Newf(errors.ErrorTypeValidation,
				"column %s is not nullable", c.Name)
		}
		return nil
	}
	if _, err := types.Parse(c.Type, v); err != nil {
		return errors.Wrapf(err, errors.ErrorTypeValidation,
			"column %s", c.Name)
	}
	return nil
}

// RelationSchema is the ordered column list of a relation.
type RelationSchema struct {
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Columns []*FlatColumn `json:"columns" yaml:"columns"`
}

// New creates a schema, rejecting duplicate column names.
func New(name string, columns ...*FlatColumn) (*RelationSchema, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		key := strings.ToLower(c.Name)
		if _, ok := seen[key]; ok {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"duplicate column %s in schema %s", c.Name, name)
		}
		seen[key] = struct{}{}
	}
	return &RelationSchema{Name: name, Columns: columns}, nil
}

// NumColumns returns the column count.
func (s *RelationSchema) NumColumns() int { return len(s.Columns) }

// ColumnNames returns the column names in schema order.
func (s *RelationSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the descriptor at position i.
func (s *RelationSchema) Column(i int) (*FlatColumn, error) {
	if i < 0 || i >= len(s.Columns) {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"column index %d out of range [0, %d)", i, len(s.Columns))
	}
	return s.Columns[i], nil
}

// FindColumn resolves a column by name or alias and returns its position.
func (s *RelationSchema) FindColumn(name string) (*FlatColumn, int, error) {
	for i, c := range s.Columns {
		if c.Matches(name) {
			return c, i, nil
		}
	}
	return nil, -1, errors.Newf(errors.ErrorTypeNotFound,
		"column %s not in schema %s", name, s.Name)
}

// HasColumn reports whether name resolves to a column.
func (s *RelationSchema) HasColumn(name string) bool {
	_, _, err := s.FindColumn(name)
	return err == nil
}

// PopColumn removes a column by name and returns its descriptor.
func (s *RelationSchema) PopColumn(name string) (*FlatColumn, error) {
	c, i, err := s.FindColumn(name)
	if err != nil {
		return nil, err
	}
	s.Columns = append(s.Columns[:i], s.Columns[i+1:]...)
	return c, nil
}

// Validate checks a named row against the schema: every schema column
// must validate, and the row must not carry unknown fields.
func (s *RelationSchema) Validate(row map[string]any) error {
	for _, c := range s.Columns {
		if err := c.Validate(row[c.Name]); err != nil {
			return err
		}
	}
	for name := range row {
		if !s.HasColumn(name) {
			return errors.Newf(errors.ErrorTypeValidation,
				"field %s not in schema %s", name, s.Name)
		}
	}
	return nil
}

// Merge combines two schemas column-by-name. Columns present in both must
// agree on type; columns present in either side survive, with the
// receiver's order first.
func (s *RelationSchema) Merge(o *RelationSchema) (*RelationSchema, error) {
	columns := make([]*FlatColumn, 0, len(s.Columns)+len(o.Columns))
	for _, c := range s.Columns {
		merged := *c
		if oc, _, err := o.FindColumn(c.Name); err == nil {
			if !c.Type.Equal(oc.Type) {
				return nil, errors.Newf(errors.ErrorTypeValidation,
					"column %s has conflicting types %s and %s", c.Name, c.Type, oc.Type)
			}
			merged.Nullable = c.Nullable || oc.Nullable
		}
		columns = append(columns, &merged)
	}
	for _, oc := range o.Columns {
		if !s.HasColumn(oc.Name) {
			extra := *oc
			columns = append(columns, &extra)
		}
	}
	return New(s.Name, columns...)
}

// AddSchemas folds a list of schemas through Merge.
func AddSchemas(schemas ...*RelationSchema) (*RelationSchema, error) {
	if len(schemas) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "no schemas to combine")
	}
	acc := schemas[0]
	for _, next := range schemas[1:] {
		merged, err := acc.Merge(next)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

// Infer builds a schema from a sample of named rows, widening column
// types as needed and marking a column nullable once a nil is seen.
// Column order is the sorted field-name order; use InferOrdered when the
// source knows its field order.
func Infer(name string, rows []map[string]any) (*RelationSchema, error) {
	seen := make(map[string]struct{})
	var order []string
	for _, row := range rows {
		for field := range row {
			if _, ok := seen[field]; !ok {
				seen[field] = struct{}{}
				order = append(order, field)
			}
		}
	}
	sort.Strings(order)
	return InferOrdered(name, order, rows)
}

// InferOrdered builds a schema over a known field order.
func InferOrdered(name string, order []string, rows []map[string]any) (*RelationSchema, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "cannot infer a schema from zero rows")
	}

	byName := make(map[string]*FlatColumn, len(order))
	for _, field := range order {
		byName[field] = &FlatColumn{Name: field, Type: types.Null}
	}

	for _, row := range rows {
		for field, v := range row {
			c, ok := byName[field]
			if !ok {
				continue
			}
			if v == nil {
				c.Nullable = true
				continue
			}
			c.Type = widen(c.Type, types.Infer(v))
		}
	}

	// A field absent from some rows is nullable
	for _, c := range byName {
		present := 0
		for _, row := range rows {
			if _, ok := row[c.Name]; ok {
				present++
			}
		}
		if present < len(rows) {
			c.Nullable = true
		}
	}

	columns := make([]*FlatColumn, len(order))
	for i, field := range order {
		columns[i] = byName[field]
	}
	return New(name, columns...)
}

// widen resolves two observed types for the same column to their common
// type: integers widen to doubles, anything else conflicting falls back
// to varchar.
func widen(a, b types.DataType) types.DataType {
	switch {
	case a.Kind() == types.KindNull:
		return b
	case b.Kind() == types.KindNull || a.Equal(b):
		return a
	case a.IsNumeric() && b.IsNumeric():
		return types.Double
	default:
		return types.Varchar
	}
}
