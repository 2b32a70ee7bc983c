package main

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ajitpratap0/tabular/pkg/arrowio"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/row"
	"github.com/ajitpratap0/tabular/pkg/schema"
	stringpool "github.com/ajitpratap0/tabular/pkg/strings"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// loadRelation reads a CSV, JSONL or Arrow file into a relation, inferring the
// schema from the data. limit > 0 caps the rows read.
func loadRelation(path, name string, limit int) (*table.Relation, error) {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeIO, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(f, name, limit)
	case ".jsonl", ".ndjson", ".json":
		return loadJSONL(f, name, limit)
	case ".arrow", ".ipc", ".feather":
		rel, err := arrowio.Read(f, name)
		if err != nil {
			return nil, err
		}
		if limit > 0 && limit < rel.Len() {
			return rel.Slice(0, limit)
		}
		return rel, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unsupported input format %s, want .csv, .jsonl or .arrow", filepath.Ext(path))
	}
}

func loadCSV(r io.Reader, name string, limit int) (*table.Relation, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, "read csv header")
	}
	fields := append([]string(nil), header...)

	// Interning dedupes repeated cells in low-cardinality columns.
	intern := stringpool.NewIntern()

	var records []map[string]any
	for limit <= 0 || len(records) < limit {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeParse, "read csv row")
		}
		record := make(map[string]any, len(fields))
		for i, field := range fields {
			if i < len(line) {
				record[field] = parseCell(line[i], intern)
			}
		}
		records = append(records, record)
	}

	relSchema, err := schema.InferOrdered(name, fields, records)
	if err != nil {
		return nil, err
	}
	return assemble(relSchema, records)
}

func loadJSONL(r io.Reader, name string, limit int) (*table.Relation, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8<<20)

	var fields []string
	seen := make(map[string]struct{})
	var records []map[string]any

	for scanner.Scan() && (limit <= 0 || len(records) < limit) {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeParse,
				"decode jsonl line %d", len(records)+1)
		}
		for field := range record {
			if _, ok := seen[field]; !ok {
				seen[field] = struct{}{}
				fields = append(fields, field)
			}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "read jsonl")
	}

	relSchema, err := schema.InferOrdered(name, fields, records)
	if err != nil {
		return nil, err
	}
	return assemble(relSchema, records)
}

// assemble coerces the loose records to the schema's native types and
// builds the relation.
func assemble(relSchema *schema.RelationSchema, records []map[string]any) (*table.Relation, error) {
	rel := table.NewRelation(relSchema)
	for i, record := range records {
		tuple := make(row.Row, relSchema.NumColumns())
		for j, c := range relSchema.Columns {
			v, ok := record[c.Name]
			if !ok || v == nil {
				continue
			}
			parsed, err := types.Parse(c.Type, v)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrorTypeParse,
					"row %d column %s", i+1, c.Name)
			}
			tuple[j] = parsed
		}
		rel.AppendUnchecked(tuple)
	}
	return rel, nil
}

// parseCell reads a CSV cell into the narrowest native value it parses
// as: empty means null, then integer, float, boolean, and finally the
// string itself.
func parseCell(s string, intern *stringpool.Intern) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return intern.Get(s)
}
