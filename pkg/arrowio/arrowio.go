// Package arrowio converts relations to and from Apache Arrow records
// and reads/writes them in the Arrow IPC file format.
package arrowio

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/row"
	"github.com/ajitpratap0/tabular/pkg/schema"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// Compression selects the IPC buffer compression.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// toArrowType maps a logical type to its Arrow physical type. Decimals
// travel as strings to keep them exact; nested and JSON values travel as
// their JSON encoding.
func toArrowType(dt types.DataType) (arrow.DataType, error) {
	switch dt.Kind() {
	case types.KindBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case types.KindInteger:
		return arrow.PrimitiveTypes.Int64, nil
	case types.KindDouble:
		return arrow.PrimitiveTypes.Float64, nil
	case types.KindTimestamp:
		return arrow.FixedWidthTypes.Timestamp_s, nil
	case types.KindDate:
		return arrow.FixedWidthTypes.Date32, nil
	case types.KindTime, types.KindInterval:
		return arrow.FixedWidthTypes.Duration_s, nil
	case types.KindBlob:
		return arrow.BinaryTypes.Binary, nil
	case types.KindVarchar, types.KindDecimal, types.KindJSONB,
		types.KindArray, types.KindStruct:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupportedType,
			"no arrow mapping for %s", dt)
	}
}

// toArrowSchema converts a relation schema.
func toArrowSchema(s *schema.RelationSchema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(s.Columns))
	for i, c := range s.Columns {
		at, err := toArrowType(c.Type)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeUnsupportedType, "column %s", c.Name)
		}
		fields[i] = arrow.Field{Name: c.Name, Type: at, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

// ToRecord builds one Arrow record from the whole relation. The caller
// owns the returned record and must Release it.
func ToRecord(rel *table.Relation) (arrow.Record, error) {
	arrowSchema, err := toArrowSchema(rel.Schema)
	if err != nil {
		return nil, err
	}

	builder := array.NewRecordBuilder(memory.NewGoAllocator(), arrowSchema)
	defer builder.Release()

	for i, c := range rel.Schema.Columns {
		arr, err := rel.Collect(c.Name)
		if err != nil {
			return nil, err
		}
		for _, v := range arr.Values {
			if err := appendValue(builder.Field(i), c.Type, v); err != nil {
				return nil, errors.Wrapf(err, errors.ErrorTypeData, "column %s", c.Name)
			}
		}
	}
	return builder.NewRecord(), nil
}

func appendValue(builder array.Builder, dt types.DataType, value any) error {
	if value == nil {
		builder.AppendNull()
		return nil
	}

	switch b := builder.(type) {
	case *array.BooleanBuilder:
		v, ok := value.(bool)
		if !ok {
			return errors.Newf(errors.ErrorTypeData, "expected bool, got %T", value)
		}
		b.Append(v)

	case *array.Int64Builder:
		switch v := value.(type) {
		case int64:
			b.Append(v)
		case int:
			b.Append(int64(v))
		default:
			return errors.Newf(errors.ErrorTypeData, "expected integer, got %T", value)
		}

	case *array.Float64Builder:
		v, ok := value.(float64)
		if !ok {
			return errors.Newf(errors.ErrorTypeData, "expected float64, got %T", value)
		}
		b.Append(v)

	case *array.TimestampBuilder:
		v, ok := value.(time.Time)
		if !ok {
			return errors.Newf(errors.ErrorTypeData, "expected time.Time, got %T", value)
		}
		b.Append(arrow.Timestamp(v.Unix()))

	case *array.Date32Builder:
		v, ok := value.(time.Time)
		if !ok {
			return errors.Newf(errors.ErrorTypeData, "expected time.Time, got %T", value)
		}
		b.Append(arrow.Date32FromTime(v))

	case *array.DurationBuilder:
		v, ok := value.(time.Duration)
		if !ok {
			return errors.Newf(errors.ErrorTypeData, "expected time.Duration, got %T", value)
		}
		b.Append(arrow.Duration(v / time.Second))

	case *array.BinaryBuilder:
		switch v := value.(type) {
		case []byte:
			b.Append(v)
		case string:
			b.Append([]byte(v))
		default:
			return errors.Newf(errors.ErrorTypeData, "expected bytes, got %T", value)
		}

	case *array.StringBuilder:
		switch v := value.(type) {
		case string:
			b.Append(v)
		case decimal.Decimal:
			b.Append(v.String())
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return err
			}
			b.Append(string(encoded))
		}

	default:
		return errors.Newf(errors.ErrorTypeUnsupportedType,
			"unsupported arrow builder %T", builder)
	}
	return nil
}

// fromArrowType maps an Arrow field back to a logical type.
func fromArrowType(at arrow.DataType) (types.DataType, error) {
	switch at.ID() {
	case arrow.BOOL:
		return types.Boolean, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		return types.Integer, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return types.Double, nil
	case arrow.TIMESTAMP:
		return types.Timestamp, nil
	case arrow.DATE32:
		return types.Date, nil
	case arrow.DURATION:
		return types.Interval, nil
	case arrow.BINARY:
		return types.Blob, nil
	case arrow.STRING:
		return types.Varchar, nil
	default:
		return types.Null, errors.Newf(errors.ErrorTypeUnsupportedType,
			"no logical mapping for arrow type %s", at)
	}
}

// FromRecord converts an Arrow record into a relation named name.
func FromRecord(rec arrow.Record, name string) (*table.Relation, error) {
	columns := make([]*schema.FlatColumn, rec.Schema().NumFields())
	for i, field := range rec.Schema().Fields() {
		dt, err := fromArrowType(field.Type)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeUnsupportedType, "column %s", field.Name)
		}
		columns[i] = &schema.FlatColumn{Name: field.Name, Type: dt, Nullable: true}
	}

	relSchema, err := schema.New(name, columns...)
	if err != nil {
		return nil, err
	}

	rel := table.NewRelation(relSchema)
	for r := 0; r < int(rec.NumRows()); r++ {
		tuple := make(row.Row, rec.NumCols())
		for c := 0; c < int(rec.NumCols()); c++ {
			tuple[c] = columnValue(rec.Column(c), r)
		}
		rel.AppendUnchecked(tuple)
	}
	return rel, nil
}

func columnValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch c := col.(type) {
	case *array.Boolean:
		return c.Value(i)
	case *array.Int64:
		return c.Value(i)
	case *array.Float64:
		return c.Value(i)
	case *array.Timestamp:
		return time.Unix(int64(c.Value(i)), 0).UTC()
	case *array.Date32:
		return c.Value(i).ToTime()
	case *array.Duration:
		return time.Duration(c.Value(i)) * time.Second
	case *array.Binary:
		return c.Value(i)
	case *array.String:
		return c.Value(i)
	default:
		return nil
	}
}

// Write streams the relation to w as one IPC file record batch.
func Write(w io.Writer, rel *table.Relation, compression Compression) error {
	rec, err := ToRecord(rel)
	if err != nil {
		return err
	}
	defer rec.Release()

	opts := []ipc.Option{
		ipc.WithSchema(rec.Schema()),
		ipc.WithAllocator(memory.NewGoAllocator()),
	}
	switch compression {
	case CompressionZstd:
		opts = append(opts, ipc.WithZstd())
	case CompressionLZ4:
		opts = append(opts, ipc.WithLZ4())
	case CompressionNone, "":
	default:
		return errors.Newf(errors.ErrorTypeConfig,
			"unsupported ipc compression %q", compression)
	}

	fw, err := ipc.NewFileWriter(w, opts...)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "create ipc writer")
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return errors.Wrap(err, errors.ErrorTypeIO, "write record batch")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "close ipc writer")
	}
	return nil
}

// Read loads an IPC file from r into a relation named name, folding all
// record batches.
func Read(r io.Reader, name string) (*table.Relation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "read ipc data")
	}

	fr, err := ipc.NewFileReader(bytes.NewReader(data), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, "open ipc reader")
	}
	defer fr.Close()

	var rel *table.Relation
	for i := 0; i < fr.NumRecords(); i++ {
		rec, err := fr.Record(i)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeParse, "read record batch %d", i)
		}
		part, err := FromRecord(rec, name)
		if err != nil {
			return nil, err
		}
		if rel == nil {
			rel = part
			continue
		}
		for _, tuple := range part.Rows() {
			rel.AppendUnchecked(tuple)
		}
	}
	if rel == nil {
		return nil, errors.New(errors.ErrorTypeParse, "ipc file holds no record batches")
	}
	return rel, nil
}

// WriteFile writes the relation to an IPC file on disk.
func WriteFile(path string, rel *table.Relation, compression Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrorTypeIO, "create %s", path)
	}
	defer f.Close()
	return Write(f, rel, compression)
}

// ReadFile loads an IPC file from disk.
func ReadFile(path string) (*table.Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeIO, "open %s", path)
	}
	defer f.Close()
	return Read(f, fileBase(path))
}

func fileBase(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	for i := 0; i < len(base); i++ {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}
