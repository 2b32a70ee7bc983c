package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// The tracing helpers must be safe to call before Initialize: the profiling
// driver uses them unconditionally.

func TestSpanNoOpBeforeInit(t *testing.T) {
	ctx, span := NewSpan(context.Background(), "profile_table")
	require.NotNil(t, span)
	require.NotNil(t, ctx)

	span.SetAttribute("table.name", "trips")
	span.SetAttribute("batch.index", 3)
	span.End()
}

func TestTableTracerPassesContext(t *testing.T) {
	tt := NewTableTracer("trips")

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	called := false
	err := tt.TraceBatch(ctx, 0, 100, func(ctx context.Context) error {
		called = true
		assert.Equal(t, "v", ctx.Value(key{}))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestTraceBatchPropagatesError(t *testing.T) {
	tt := NewTableTracer("trips")

	want := errors.New(errors.ErrorTypeData, "bad batch")
	err := tt.TraceBatch(context.Background(), 1, 50, func(context.Context) error {
		return want
	})
	assert.Equal(t, want, err)
}

func TestTraceColumnPropagatesError(t *testing.T) {
	tt := NewTableTracer("trips")

	want := errors.New(errors.ErrorTypeData, "bad column")
	err := tt.TraceColumn(context.Background(), "fare", func(context.Context) error {
		return want
	})
	assert.Equal(t, want, err)

	assert.NoError(t, tt.TraceColumn(context.Background(), "fare", func(context.Context) error {
		return nil
	}))
}

func TestRecordDurationNoOpBeforeInit(t *testing.T) {
	RecordDuration("batch_profile_duration", 0, map[string]string{"table": "trips"})
}
