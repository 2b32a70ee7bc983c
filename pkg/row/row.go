// Package row implements positional rows and their length-prefixed wire
// framing.
package row

import (
	"encoding/binary"
	"io"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/pool"
)

// Frame layout: a two-byte marker, a big-endian uint32 payload size, then
// the JSON-encoded value list.
const (
	frameMarkerA = 0x10
	frameMarkerB = 0x00
	headerSize   = 6

	// MaxFrameSize caps a single encoded row
	MaxFrameSize = 8 << 20
)

// Row is one positional tuple. Field order is owned by the relation's
// schema.
type Row []any

// Map pairs the row's values with the given field names.
func (r Row) Map(fields []string) (map[string]any, error) {
	if len(fields) != len(r) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"row has %d values but %d field names given", len(r), len(fields))
	}
	m := make(map[string]any, len(r))
	for i, f := range fields {
		m[f] = r[i]
	}
	return m, nil
}

// AsJSON encodes the row as a JSON array.
func (r Row) AsJSON() ([]byte, error) {
	return json.Marshal([]any(r))
}

// Bytes encodes the row as a wire frame.
func (r Row) Bytes() ([]byte, error) {
	payload, err := json.Marshal([]any(r))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "encode row")
	}
	if len(payload) > MaxFrameSize {
		return nil, errors.Newf(errors.ErrorTypeData,
			"row frame of %d bytes exceeds limit of %d", len(payload), MaxFrameSize)
	}

	out := make([]byte, headerSize+len(payload))
	out[0] = frameMarkerA
	out[1] = frameMarkerB
	binary.BigEndian.PutUint32(out[2:6], uint32(len(payload)))
	copy(out[headerSize:], payload)
	return out, nil
}

// FromBytes decodes one wire frame back into a row.
func FromBytes(data []byte) (Row, error) {
	if len(data) < headerSize {
		return nil, errors.Newf(errors.ErrorTypeParse,
			"row frame truncated: %d bytes", len(data))
	}
	if data[0] != frameMarkerA || data[1] != frameMarkerB {
		return nil, errors.Newf(errors.ErrorTypeParse,
			"bad row frame marker 0x%02x%02x", data[0], data[1])
	}

	size := binary.BigEndian.Uint32(data[2:6])
	if size > MaxFrameSize {
		return nil, errors.Newf(errors.ErrorTypeParse,
			"row frame declares %d bytes, limit is %d", size, MaxFrameSize)
	}
	if int(size) != len(data)-headerSize {
		return nil, errors.Newf(errors.ErrorTypeParse,
			"row frame declares %d payload bytes but carries %d", size, len(data)-headerSize)
	}

	var values []any
	if err := json.Unmarshal(data[headerSize:], &values); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, "decode row payload")
	}
	return Row(values), nil
}

// WriteTo streams the frame to w.
func (r Row) WriteTo(w io.Writer) (int64, error) {
	frame, err := r.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(frame)
	return int64(n), err
}

// ReadFrom reads exactly one frame from r. io.EOF on a clean boundary
// means no more rows.
func ReadFrom(rd io.Reader) (Row, error) {
	header := pool.GetByteSlice()
	defer pool.PutByteSlice(header)
	header = append(header[:0], make([]byte, headerSize)...)

	if _, err := io.ReadFull(rd, header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "read row frame header")
	}
	if header[0] != frameMarkerA || header[1] != frameMarkerB {
		return nil, errors.Newf(errors.ErrorTypeParse,
			"bad row frame marker 0x%02x%02x", header[0], header[1])
	}

	size := binary.BigEndian.Uint32(header[2:6])
	if size > MaxFrameSize {
		return nil, errors.Newf(errors.ErrorTypeParse,
			"row frame declares %d bytes, limit is %d", size, MaxFrameSize)
	}

	payload := make([]byte, headerSize+int(size))
	copy(payload, header)
	if _, err := io.ReadFull(rd, payload[headerSize:]); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "read row frame payload")
	}
	return FromBytes(payload)
}
