package codec

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
)

// RLEEncodeAny dispatches run-length encoding on the array's declared
// element width. The supported set is the fixed integer widths; anything
// else, floating point included, is an unsupported-type error naming the
// offending type.
func RLEEncodeAny(arr any) (values any, lengths []int32, err error) {
	switch a := arr.(type) {
	case []int8:
		v, l := RLEEncode(a)
		return v, l, nil
	case []int16:
		v, l := RLEEncode(a)
		return v, l, nil
	case []int32:
		v, l := RLEEncode(a)
		return v, l, nil
	case []int64:
		v, l := RLEEncode(a)
		return v, l, nil
	default:
		return nil, nil, errors.Newf(errors.ErrorTypeUnsupportedType,
			"run-length encoding does not support element type %T", arr)
	}
}

// RLEDecodeAny is the inverse dispatch of RLEEncodeAny.
func RLEDecodeAny(values any, lengths []int32) (any, error) {
	switch v := values.(type) {
	case []int8:
		return RLEDecode(v, lengths)
	case []int16:
		return RLEDecode(v, lengths)
	case []int32:
		return RLEDecode(v, lengths)
	case []int64:
		return RLEDecode(v, lengths)
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupportedType,
			"run-length decoding does not support element type %T", values)
	}
}

// DictEncodeAny dispatches dictionary encoding on the array's declared
// element type: the fixed integer widths plus strings. Floating point is
// an unsupported-type error, not a silent fallback.
func DictEncodeAny(arr any) (dictionary any, indices []uint32, err error) {
	switch a := arr.(type) {
	case []int8:
		d, idx := DictEncode(a)
		return d, idx, nil
	case []int16:
		d, idx := DictEncode(a)
		return d, idx, nil
	case []int32:
		d, idx := DictEncode(a)
		return d, idx, nil
	case []int64:
		d, idx := DictEncode(a)
		return d, idx, nil
	case []string:
		d, idx := DictEncode(a)
		return d, idx, nil
	default:
		return nil, nil, errors.Newf(errors.ErrorTypeUnsupportedType,
			"dictionary encoding does not support element type %T", arr)
	}
}

// DictDecodeAny is the inverse dispatch of DictEncodeAny.
func DictDecodeAny(dictionary any, indices []uint32) (any, error) {
	switch d := dictionary.(type) {
	case []int8:
		return DictDecode(d, indices)
	case []int16:
		return DictDecode(d, indices)
	case []int32:
		return DictDecode(d, indices)
	case []int64:
		return DictDecode(d, indices)
	case []string:
		return DictDecode(d, indices)
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupportedType,
			"dictionary decoding does not support element type %T", dictionary)
	}
}
