package types

import (
	"strconv"
)

// ScalarKind discriminates the Scalar union.
type ScalarKind uint8

const (
	// ScalarInt64 holds an exact 64-bit integer
	ScalarInt64 ScalarKind = iota
	// ScalarFloat64 holds a native float
	ScalarFloat64
)

// Scalar is a small union over int64 and float64 used for profile bounds,
// so integer columns keep exact 64-bit minima and maxima while double
// columns keep native floats. The zero value is the integer 0.
type Scalar struct {
	kind ScalarKind
	i    int64
	f    float64
}

// Int64Scalar wraps an int64.
func Int64Scalar(v int64) Scalar {
	return Scalar{kind: ScalarInt64, i: v}
}

// Float64Scalar wraps a float64.
func Float64Scalar(v float64) Scalar {
	return Scalar{kind: ScalarFloat64, f: v}
}

// Kind returns the union discriminator.
func (s Scalar) Kind() ScalarKind { return s.kind }

// Int64 returns the integer value; truncates when the kind is float.
func (s Scalar) Int64() int64 {
	if s.kind == ScalarFloat64 {
		return int64(s.f)
	}
	return s.i
}

// Float64 returns the value as a float64.
func (s Scalar) Float64() float64 {
	if s.kind == ScalarInt64 {
		return float64(s.i)
	}
	return s.f
}

// Value returns the native Go value.
func (s Scalar) Value() any {
	if s.kind == ScalarInt64 {
		return s.i
	}
	return s.f
}

// Compare orders two scalars: -1, 0 or 1. Mixed kinds compare as floats.
func (s Scalar) Compare(o Scalar) int {
	if s.kind == ScalarInt64 && o.kind == ScalarInt64 {
		switch {
		case s.i < o.i:
			return -1
		case s.i > o.i:
			return 1
		default:
			return 0
		}
	}
	a, b := s.Float64(), o.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports s < o.
func (s Scalar) Less(o Scalar) bool { return s.Compare(o) < 0 }

// String renders the native value.
func (s Scalar) String() string {
	if s.kind == ScalarInt64 {
		return strconv.FormatInt(s.i, 10)
	}
	return strconv.FormatFloat(s.f, 'g', -1, 64)
}

// MarshalJSON renders the native value.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

// MinScalar returns the smaller of a and b.
func MinScalar(a, b Scalar) Scalar {
	if b.Less(a) {
		return b
	}
	return a
}

// MaxScalar returns the larger of a and b.
func MaxScalar(a, b Scalar) Scalar {
	if a.Less(b) {
		return b
	}
	return a
}
