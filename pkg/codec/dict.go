package codec

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
)

// DictEncode dictionary-encodes arr: the returned dictionary holds each
// distinct value once, in first-occurrence order, and indices holds one
// dictionary index per input position. Works over fixed-width numerics and
// variable-width strings alike, keyed by value equality. Empty input
// yields empty outputs.
func DictEncode[T comparable](arr []T) (dictionary []T, indices []uint32) {
	dictionary = make([]T, 0, 8)
	indices = make([]uint32, 0, len(arr))

	seen := make(map[T]uint32, 8)
	for _, v := range arr {
		idx, ok := seen[v]
		if !ok {
			idx = uint32(len(dictionary))
			dictionary = append(dictionary, v)
			seen[v] = idx
		}
		indices = append(indices, idx)
	}

	return dictionary, indices
}

// DictDecode gathers dictionary[indices[i]] for each position. An index at
// or beyond the dictionary length is a codec shape bounds error, never
// wrapped or clamped.
func DictDecode[T any](dictionary []T, indices []uint32) ([]T, error) {
	out := make([]T, 0, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(dictionary) {
			return nil, errors.Newf(errors.ErrorTypeCodecShape,
				"dictionary decode: index %d at position %d out of range for dictionary of %d",
				idx, i, len(dictionary))
		}
		out = append(out, dictionary[idx])
	}
	return out, nil
}
