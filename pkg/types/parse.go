package types

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// timestampLayouts are tried in order when parsing string timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse canonicalizes loosely-typed input into the native representation
// of the target logical type. nil passes through as nil (a null slot).
// Unparseable input yields a parse error naming the value and target type.
func Parse(dt DataType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch dt.kind {
	case KindBoolean:
		return parseBoolean(v)
	case KindInteger:
		return parseInteger(v)
	case KindDouble:
		return parseDouble(v)
	case KindDecimal:
		return parseDecimal(v)
	case KindDate:
		t, err := parseTimestamp(v)
		if err != nil {
			return nil, parseError(v, dt)
		}
		y, m, d := t.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case KindTimestamp:
		t, err := parseTimestamp(v)
		if err != nil {
			return nil, parseError(v, dt)
		}
		return t.UTC().Truncate(time.Second), nil
	case KindTime, KindInterval:
		return parseDuration(v, dt)
	case KindVarchar:
		return parseVarchar(v, dt)
	case KindBlob:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
		return nil, parseError(v, dt)
	case KindArray:
		if arr, ok := v.([]any); ok {
			return arr, nil
		}
		return nil, parseError(v, dt)
	case KindStruct:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
		return nil, parseError(v, dt)
	case KindJSONB:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
		return nil, parseError(v, dt)
	case KindNull:
		return nil, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupportedType, "cannot parse into %s", dt)
	}
}

func parseError(v any, dt DataType) error {
	return errors.Newf(errors.ErrorTypeParse, "cannot parse %v (%T) as %s", v, v, dt)
}

func parseBoolean(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch b {
		case "true", "True", "TRUE", "1", "yes":
			return true, nil
		case "false", "False", "FALSE", "0", "no":
			return false, nil
		}
	case int, int32, int64:
		i, _ := parseInteger(v)
		return i.(int64) != 0, nil
	}
	return nil, parseError(v, Boolean)
}

func parseInteger(v any) (any, error) {
	switch i := v.(type) {
	case int:
		return int64(i), nil
	case int8:
		return int64(i), nil
	case int16:
		return int64(i), nil
	case int32:
		return int64(i), nil
	case int64:
		return i, nil
	case uint:
		return int64(i), nil
	case uint32:
		return int64(i), nil
	case uint64:
		return int64(i), nil
	case float64:
		if i == float64(int64(i)) {
			return int64(i), nil
		}
	case string:
		if parsed, err := strconv.ParseInt(i, 10, 64); err == nil {
			return parsed, nil
		}
	}
	return nil, parseError(v, Integer)
}

func parseDouble(v any) (any, error) {
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case string:
		if parsed, err := strconv.ParseFloat(f, 64); err == nil {
			return parsed, nil
		}
	}
	return nil, parseError(v, Double)
}

func parseDecimal(v any) (any, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case string:
		if parsed, err := decimal.NewFromString(d); err == nil {
			return parsed, nil
		}
	case float64:
		return decimal.NewFromFloat(d), nil
	case int64:
		return decimal.NewFromInt(d), nil
	case int:
		return decimal.NewFromInt(int64(d)), nil
	}
	return nil, parseError(v, DataType{kind: KindDecimal})
}

func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case int64:
		return time.Unix(t, 0).UTC(), nil
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
	}
	return time.Time{}, errors.Newf(errors.ErrorTypeParse, "cannot parse %v as timestamp", v)
}

func parseDuration(v any, dt DataType) (any, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case int64:
		return time.Duration(d) * time.Second, nil
	case string:
		if parsed, err := time.ParseDuration(d); err == nil {
			return parsed, nil
		}
	}
	return nil, parseError(v, dt)
}

func parseVarchar(v any, dt DataType) (any, error) {
	s, ok := v.(string)
	if !ok {
		switch x := v.(type) {
		case []byte:
			s = string(x)
		default:
			return nil, parseError(v, dt)
		}
	}
	if dt.length > 0 && int32(len(s)) > dt.length {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"string of length %d exceeds %s", len(s), dt)
	}
	return s, nil
}

// Infer maps a native Go value to its logical type. nil infers NULL.
func Infer(v any) DataType {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case int, int8, int16, int32, int64, uint, uint32, uint64:
		return Integer
	case float32, float64:
		return Double
	case decimal.Decimal:
		return DataType{kind: KindDecimal}
	case time.Time:
		return Timestamp
	case time.Duration:
		return Interval
	case string:
		return Varchar
	case []byte:
		return Blob
	case []any:
		return Array(Null)
	case map[string]any:
		return Struct
	default:
		return Varchar
	}
}
