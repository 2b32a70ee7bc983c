package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Span represents a tracing span with batched attribute updates
type Span struct {
	span       trace.Span
	startTime  time.Time
	attributes []attribute.KeyValue
}

// NewSpan creates a new span under the global tracer. A no-op span is
// returned when observability was never initialized.
func NewSpan(ctx context.Context, operationName string) (context.Context, *Span) {
	if tracer == nil {
		return ctx, &Span{startTime: time.Now()}
	}
	ctx, span := tracer.Start(ctx, operationName)

	return ctx, &Span{
		span:      span,
		startTime: time.Now(),
	}
}

// SetAttribute adds an attribute to the span (batched until End)
func (s *Span) SetAttribute(key string, value interface{}) {
	var attr attribute.KeyValue

	switch v := value.(type) {
	case string:
		attr = attribute.String(key, v)
	case int:
		attr = attribute.Int(key, v)
	case int64:
		attr = attribute.Int64(key, v)
	case float64:
		attr = attribute.Float64(key, v)
	case bool:
		attr = attribute.Bool(key, v)
	default:
		attr = attribute.String(key, fmt.Sprintf("%v", v))
	}

	s.attributes = append(s.attributes, attr)
}

// SetStatus sets the span status
func (s *Span) SetStatus(code codes.Code, description string) {
	if s.span != nil {
		s.span.SetStatus(code, description)
	}
}

// End ends the span, flushing batched attributes
func (s *Span) End() {
	if s.span == nil {
		return
	}
	if len(s.attributes) > 0 {
		s.span.SetAttributes(s.attributes...)
	}
	s.span.End()
}

// TableTracer provides table-profiling-specific tracing utilities
type TableTracer struct {
	table string
}

// NewTableTracer creates a tracer scoped to one table
func NewTableTracer(table string) *TableTracer {
	return &TableTracer{table: table}
}

// StartSpan starts a table-scoped span
func (tt *TableTracer) StartSpan(ctx context.Context, operation string) (context.Context, *Span) {
	ctx, span := NewSpan(ctx, fmt.Sprintf("profile.%s.%s", tt.table, operation))

	span.SetAttribute("table.name", tt.table)
	span.SetAttribute("table.operation", operation)

	return ctx, span
}

// TraceBatch traces one batch profiling pass
func (tt *TableTracer) TraceBatch(ctx context.Context, batchIndex, batchSize int, fn func(context.Context) error) error {
	ctx, span := tt.StartSpan(ctx, "batch")
	defer span.End()

	span.SetAttribute("batch.index", batchIndex)
	span.SetAttribute("batch.size", batchSize)

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	RecordDuration("batch_profile_duration", duration, map[string]string{
		"table":  tt.table,
		"status": getStatus(err),
	})

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttribute("error", true)
	} else {
		span.SetStatus(codes.Ok, "")
		if duration > 0 {
			span.SetAttribute("batch.rows_per_second", float64(batchSize)/duration.Seconds())
		}
	}

	return err
}

// TraceColumn traces one column profiling pass within a batch
func (tt *TableTracer) TraceColumn(ctx context.Context, column string, fn func(context.Context) error) error {
	ctx, span := tt.StartSpan(ctx, "column")
	defer span.End()

	span.SetAttribute("column.name", column)

	err := fn(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return err
}

// getStatus returns status string for metrics
func getStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// instrument cache for otel metric helpers
var (
	histMu     sync.Mutex
	histograms = map[string]metric.Float64Histogram{}
)

// RecordDuration records an operation duration through the otel meter.
// A no-op when observability was never initialized.
func RecordDuration(name string, d time.Duration, labels map[string]string) {
	if meter == nil {
		return
	}

	histMu.Lock()
	h, ok := histograms[name]
	if !ok {
		var err error
		h, err = meter.Float64Histogram(name, metric.WithUnit("s"))
		if err != nil {
			histMu.Unlock()
			return
		}
		histograms[name] = h
	}
	histMu.Unlock()

	attrs := make([]attribute.KeyValue, 0, len(labels))
	for k, v := range labels {
		attrs = append(attrs, attribute.String(k, v))
	}

	h.Record(context.Background(), d.Seconds(), metric.WithAttributes(attrs...))
}
