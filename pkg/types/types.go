// Package types defines the logical type system for Tabular: the closed
// enumeration of column types, their parameterized variants, the scalar
// union used for profile bounds, loose-input parsing into canonical native
// representations, and the string ordering key.
//
// Native representations per logical type:
//
//	BOOLEAN   bool
//	INTEGER   int64
//	DOUBLE    float64
//	DECIMAL   decimal.Decimal
//	DATE      time.Time (UTC midnight)
//	TIME      time.Duration (offset from midnight)
//	TIMESTAMP time.Time (second precision for epoch math)
//	INTERVAL  time.Duration
//	VARCHAR   string
//	BLOB      []byte
//	ARRAY     []any
//	STRUCT    map[string]any
//	JSONB     []byte
//	NULL      nil
package types

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	stringpool "github.com/ajitpratap0/tabular/pkg/strings"
)

// Kind enumerates the logical column types.
type Kind uint8

const (
	// KindNull is the type of columns holding only nulls
	KindNull Kind = iota
	// KindBoolean holds true/false values
	KindBoolean
	// KindInteger holds 64-bit signed integers
	KindInteger
	// KindDouble holds 64-bit floats
	KindDouble
	// KindDecimal holds fixed-precision decimals
	KindDecimal
	// KindDate holds calendar dates
	KindDate
	// KindTime holds times of day
	KindTime
	// KindTimestamp holds points in time
	KindTimestamp
	// KindInterval holds durations
	KindInterval
	// KindVarchar holds strings
	KindVarchar
	// KindBlob holds raw bytes
	KindBlob
	// KindArray holds homogeneous lists
	KindArray
	// KindStruct holds named field groups
	KindStruct
	// KindJSONB holds arbitrary JSON documents
	KindJSONB
)

var kindNames = map[Kind]string{
	KindNull:      "NULL",
	KindBoolean:   "BOOLEAN",
	KindInteger:   "INTEGER",
	KindDouble:    "DOUBLE",
	KindDecimal:   "DECIMAL",
	KindDate:      "DATE",
	KindTime:      "TIME",
	KindTimestamp: "TIMESTAMP",
	KindInterval:  "INTERVAL",
	KindVarchar:   "VARCHAR",
	KindBlob:      "BLOB",
	KindArray:     "ARRAY",
	KindStruct:    "STRUCT",
	KindJSONB:     "JSONB",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// DataType is a logical type value. Parameterized variants (DECIMAL,
// VARCHAR, BLOB, ARRAY) carry their parameters as part of the value.
// The zero value is NULL.
type DataType struct {
	kind      Kind
	precision int32
	scale     int32
	length    int32 // 0 means unbounded for VARCHAR/BLOB
	elem      *DataType
}

// Unparameterized type values.
var (
	Null      = DataType{kind: KindNull}
	Boolean   = DataType{kind: KindBoolean}
	Integer   = DataType{kind: KindInteger}
	Double    = DataType{kind: KindDouble}
	Date      = DataType{kind: KindDate}
	Time      = DataType{kind: KindTime}
	Timestamp = DataType{kind: KindTimestamp}
	Interval  = DataType{kind: KindInterval}
	Varchar   = DataType{kind: KindVarchar}
	Blob      = DataType{kind: KindBlob}
	Struct    = DataType{kind: KindStruct}
	JSONB     = DataType{kind: KindJSONB}
)

// Decimal constructs a DECIMAL(precision, scale) type.
// Requires precision >= scale >= 0.
func Decimal(precision, scale int32) (DataType, error) {
	if scale < 0 || precision < scale {
		return DataType{}, errors.Newf(errors.ErrorTypeTypeConfiguration,
			"invalid DECIMAL(%d,%d): requires precision >= scale >= 0", precision, scale)
	}
	return DataType{kind: KindDecimal, precision: precision, scale: scale}, nil
}

// VarcharN constructs a VARCHAR(n) type. Requires n > 0.
func VarcharN(n int32) (DataType, error) {
	if n <= 0 {
		return DataType{}, errors.Newf(errors.ErrorTypeTypeConfiguration,
			"invalid VARCHAR(%d): length must be positive", n)
	}
	return DataType{kind: KindVarchar, length: n}, nil
}

// BlobN constructs a BLOB(n) type. Requires n > 0.
func BlobN(n int32) (DataType, error) {
	if n <= 0 {
		return DataType{}, errors.Newf(errors.ErrorTypeTypeConfiguration,
			"invalid BLOB(%d): length must be positive", n)
	}
	return DataType{kind: KindBlob, length: n}, nil
}

// Array constructs an ARRAY(element) type.
func Array(elem DataType) DataType {
	e := elem
	return DataType{kind: KindArray, elem: &e}
}

// Kind returns the type's kind.
func (t DataType) Kind() Kind { return t.kind }

// Precision returns the DECIMAL precision parameter.
func (t DataType) Precision() int32 { return t.precision }

// Scale returns the DECIMAL scale parameter.
func (t DataType) Scale() int32 { return t.scale }

// Length returns the VARCHAR/BLOB length bound, 0 when unbounded.
func (t DataType) Length() int32 { return t.length }

// Element returns the ARRAY element type.
func (t DataType) Element() DataType {
	if t.elem == nil {
		return Null
	}
	return *t.elem
}

// Equal reports whether two type values are identical, parameters included.
func (t DataType) Equal(o DataType) bool {
	if t.kind != o.kind || t.precision != o.precision ||
		t.scale != o.scale || t.length != o.length {
		return false
	}
	if t.elem == nil && o.elem == nil {
		return true
	}
	if t.elem == nil || o.elem == nil {
		return false
	}
	return t.elem.Equal(*o.elem)
}

// IsNumeric reports whether the type profiles through the numeric strategy.
func (t DataType) IsNumeric() bool {
	switch t.kind {
	case KindInteger, KindDouble, KindDecimal:
		return true
	}
	return false
}

// IsTemporal reports whether the type profiles through epoch conversion.
func (t DataType) IsTemporal() bool {
	switch t.kind {
	case KindDate, KindTime, KindTimestamp, KindInterval:
		return true
	}
	return false
}

// String renders the type including parameters, e.g. "DECIMAL(10,2)".
func (t DataType) String() string {
	switch t.kind {
	case KindDecimal:
		return stringpool.Sprintf("DECIMAL(%d,%d)", t.precision, t.scale)
	case KindVarchar:
		if t.length > 0 {
			return stringpool.Sprintf("VARCHAR(%d)", t.length)
		}
		return "VARCHAR"
	case KindBlob:
		if t.length > 0 {
			return stringpool.Sprintf("BLOB(%d)", t.length)
		}
		return "BLOB"
	case KindArray:
		return stringpool.Sprintf("ARRAY<%s>", t.Element().String())
	default:
		return t.kind.String()
	}
}

// MarshalJSON renders the type as its string form.
func (t DataType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// NativeArray is a finite, indexable, homogeneously-typed sequence of
// values of one logical type, each slot independently nullable (nil).
// It is the unit the codecs and profilers operate on.
type NativeArray struct {
	DataType DataType
	Values   []any
}

// NewNativeArray wraps values in a NativeArray of the given type.
func NewNativeArray(dt DataType, values []any) *NativeArray {
	return &NativeArray{DataType: dt, Values: values}
}

// Len returns the logical length including null slots.
func (a *NativeArray) Len() int { return len(a.Values) }

// Missing returns the number of null slots.
func (a *NativeArray) Missing() int {
	n := 0
	for _, v := range a.Values {
		if v == nil {
			n++
		}
	}
	return n
}

// NonNull returns the non-null values in order.
func (a *NativeArray) NonNull() []any {
	out := make([]any, 0, len(a.Values))
	for _, v := range a.Values {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
