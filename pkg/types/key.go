package types

import (
	"encoding/binary"
	"math"
	"strings"
)

// StringOrderKey maps a string to a 64-bit integer that is monotonic with
// respect to lexicographic byte ordering of the compared prefix: the first
// 8 bytes of the UTF-8 encoding, zero-padded on the right for short
// strings, interpreted as a big-endian unsigned integer and clamped to
// MaxInt64 on overflow.
//
// The key is a prefix-only approximation: bytes beyond the eighth do not
// contribute, and clamped keys collapse distinct strings. This is an
// accepted trade-off for O(1) ordering comparisons, not a defect.
func StringOrderKey(s string) int64 {
	var buf [8]byte
	copy(buf[:], s)
	u := binary.BigEndian.Uint64(buf[:])
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

// KeyToString inverts StringOrderKey for short, unclamped strings,
// stripping the zero padding. The second return is false when the key was
// clamped and the original string cannot be recovered.
func KeyToString(key int64) (string, bool) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(key))
	s := strings.TrimRight(string(buf[:]), "\x00")
	if key == math.MaxInt64 {
		return s, false
	}
	return s, true
}
