// Package codec provides the stateless encode/decode kernels for the
// physical column representations: run-length encoding and dictionary
// encoding over homogeneous native arrays.
//
// Generic kernels are parameterized over the closed set of fixed-width
// integer element types; typed per-width entry points delegate to them.
// The any-typed entry points dispatch on the array's declared element
// width and reject unsupported element types (notably floating point)
// with an error naming the offending type.
package codec

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Integer is the closed set of element types the run-length kernels accept.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RLEEncode run-length-encodes arr in a single scan. A new run starts
// whenever the current element differs from the previous one (strict
// inequality), so adjacent entries of values are always distinct and
// sum(lengths) == len(arr). Empty input yields empty outputs.
func RLEEncode[T Integer](arr []T) (values []T, lengths []int32) {
	if len(arr) == 0 {
		return []T{}, []int32{}
	}

	values = make([]T, 0, 8)
	lengths = make([]int32, 0, 8)

	current := arr[0]
	run := int32(1)
	for _, v := range arr[1:] {
		if v == current {
			run++
			continue
		}
		values = append(values, current)
		lengths = append(lengths, run)
		current = v
		run = 1
	}
	values = append(values, current)
	lengths = append(lengths, run)

	return values, lengths
}

// RLEDecode expands (values, lengths) back into the original array: for
// each pair it emits length copies of the value, in order. The arrays
// must be the same length and every length must be at least 1; violations
// are codec shape errors, never silently repaired.
func RLEDecode[T Integer](values []T, lengths []int32) ([]T, error) {
	if len(values) != len(lengths) {
		return nil, errors.Newf(errors.ErrorTypeCodecShape,
			"run-length decode: %d values but %d lengths", len(values), len(lengths))
	}

	total := int32(0)
	for i, n := range lengths {
		if n < 1 {
			return nil, errors.Newf(errors.ErrorTypeCodecShape,
				"run-length decode: run %d has non-positive length %d", i, n)
		}
		total += n
	}

	out := make([]T, 0, total)
	for i, v := range values {
		for n := int32(0); n < lengths[i]; n++ {
			out = append(out, v)
		}
	}
	return out, nil
}

// Typed entry points per fixed integer width.

// RLEEncodeInt8 run-length-encodes an int8 array.
func RLEEncodeInt8(arr []int8) ([]int8, []int32) { return RLEEncode(arr) }

// RLEEncodeInt16 run-length-encodes an int16 array.
func RLEEncodeInt16(arr []int16) ([]int16, []int32) { return RLEEncode(arr) }

// RLEEncodeInt32 run-length-encodes an int32 array.
func RLEEncodeInt32(arr []int32) ([]int32, []int32) { return RLEEncode(arr) }

// RLEEncodeInt64 run-length-encodes an int64 array.
func RLEEncodeInt64(arr []int64) ([]int64, []int32) { return RLEEncode(arr) }

// RLEDecodeInt8 expands an int8 run-length encoding.
func RLEDecodeInt8(values []int8, lengths []int32) ([]int8, error) {
	return RLEDecode(values, lengths)
}

// RLEDecodeInt16 expands an int16 run-length encoding.
func RLEDecodeInt16(values []int16, lengths []int32) ([]int16, error) {
	return RLEDecode(values, lengths)
}

// RLEDecodeInt32 expands an int32 run-length encoding.
func RLEDecodeInt32(values []int32, lengths []int32) ([]int32, error) {
	return RLEDecode(values, lengths)
}

// RLEDecodeInt64 expands an int64 run-length encoding.
func RLEDecodeInt64(values []int64, lengths []int32) ([]int64, error) {
	return RLEDecode(values, lengths)
}
