package arrowio

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/row"
	"github.com/ajitpratap0/tabular/pkg/schema"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/types"
)

func sampleRelation(t *testing.T) *table.Relation {
	t.Helper()

	s, err := schema.New("events",
		&schema.FlatColumn{Name: "id", Type: types.Integer},
		&schema.FlatColumn{Name: "score", Type: types.Double, Nullable: true},
		&schema.FlatColumn{Name: "label", Type: types.Varchar, Nullable: true},
		&schema.FlatColumn{Name: "active", Type: types.Boolean},
	)
	require.NoError(t, err)

	rel := table.NewRelation(s)
	rel.AppendUnchecked(row.Row{int64(1), 0.5, "alpha", true})
	rel.AppendUnchecked(row.Row{int64(2), nil, "beta", false})
	rel.AppendUnchecked(row.Row{int64(3), 2.25, nil, true})
	return rel
}

func TestRecordRoundTrip(t *testing.T) {
	rel := sampleRelation(t)

	rec, err := ToRecord(rel)
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 3, rec.NumRows())
	assert.EqualValues(t, 4, rec.NumCols())

	back, err := FromRecord(rec, "events")
	require.NoError(t, err)

	require.Equal(t, 3, back.Len())
	rows := back.Rows()
	assert.Equal(t, int64(1), rows[0][0])
	assert.Equal(t, 0.5, rows[0][1])
	assert.Equal(t, "alpha", rows[0][2])
	assert.Equal(t, true, rows[0][3])
	assert.Nil(t, rows[1][1])
	assert.Nil(t, rows[2][2])
}

func TestRecordTemporalColumns(t *testing.T) {
	s, err := schema.New("times",
		&schema.FlatColumn{Name: "at", Type: types.Timestamp},
		&schema.FlatColumn{Name: "day", Type: types.Date},
		&schema.FlatColumn{Name: "span", Type: types.Interval},
	)
	require.NoError(t, err)

	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rel := table.NewRelation(s)
	rel.AppendUnchecked(row.Row{at, day, 90 * time.Second})

	rec, err := ToRecord(rel)
	require.NoError(t, err)
	defer rec.Release()

	back, err := FromRecord(rec, "times")
	require.NoError(t, err)

	rows := back.Rows()
	assert.True(t, at.Equal(rows[0][0].(time.Time)))
	assert.True(t, day.Equal(rows[0][1].(time.Time)))
	assert.Equal(t, 90*time.Second, rows[0][2])
}

func TestWriteReadIPC(t *testing.T) {
	rel := sampleRelation(t)

	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(string(c), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, rel, c))

			back, err := Read(&buf, "events")
			require.NoError(t, err)
			assert.Equal(t, rel.Len(), back.Len())
			assert.Equal(t, rel.Rows(), back.Rows())
		})
	}
}

func TestWriteUnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleRelation(t), Compression("brotli"))
	require.Error(t, err)
}

func TestReadEmptyPayload(t *testing.T) {
	_, err := Read(bytes.NewReader(nil), "events")
	require.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	rel := sampleRelation(t)
	path := filepath.Join(t.TempDir(), "events.arrow")

	require.NoError(t, WriteFile(path, rel, CompressionZstd))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "events", back.Schema.Name)
	assert.Equal(t, rel.Rows(), back.Rows())
}
