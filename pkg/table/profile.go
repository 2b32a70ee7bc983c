package table

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/logger"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/observability"
	"github.com/ajitpratap0/tabular/pkg/profile"
)

// ProfileOptions controls the whole-table profiling driver.
type ProfileOptions struct {
	// BatchSize is the rows per parallel unit; 0 means DefaultBatchSize
	BatchSize int
	// Workers bounds batch-level parallelism; 0 means GOMAXPROCS
	Workers int
	// Profile bounds the approximate per-column structures
	Profile profile.Options
}

// DefaultProfileOptions returns the standard driver settings.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{
		BatchSize: DefaultBatchSize,
		Profile:   profile.DefaultOptions(),
	}
}

// TableProfile is the profile of every column of one relation.
type TableProfile struct {
	Table    string                   `json:"table"`
	RowCount int64                    `json:"row_count"`
	Profiles []*profile.ColumnProfile `json:"columns"`
}

// Column returns the profile of the named column.
func (tp *TableProfile) Column(name string) (*profile.ColumnProfile, error) {
	for _, p := range tp.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.Newf(errors.ErrorTypeNotFound,
		"no profile for column %s in table %s", name, tp.Table)
}

// ColumnAt returns the profile at schema position i.
func (tp *TableProfile) ColumnAt(i int) (*profile.ColumnProfile, error) {
	if i < 0 || i >= len(tp.Profiles) {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"profile index %d out of range [0, %d)", i, len(tp.Profiles))
	}
	return tp.Profiles[i], nil
}

// AsRows renders one field-value mapping per column, for tabular display.
func (tp *TableProfile) AsRows() []map[string]any {
	rows := make([]map[string]any, len(tp.Profiles))
	for i, p := range tp.Profiles {
		rows[i] = p.Map()
	}
	return rows
}

// JSON serializes the table profile.
func (tp *TableProfile) JSON() ([]byte, error) {
	return json.Marshal(tp)
}

// batchResult carries one batch's per-column profiles, keyed by batch
// index so the fold can run in row order regardless of completion order.
type batchResult struct {
	index    int
	profiles []*profile.ColumnProfile
	err      error
}

// Profile computes the profile of every column of the relation. Batches
// are profiled in parallel; per-column results are folded sequentially
// in batch order, so the result is deterministic for a given relation
// and batch size.
func Profile(ctx context.Context, rel *Relation, opts ProfileOptions) (*TableProfile, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Profile.SketchSize == 0 {
		opts.Profile = profile.DefaultOptions()
	}

	log := logger.WithContext(ctx).With(
		zap.String("table", rel.Name()),
		zap.Int("rows", rel.Len()),
		zap.Int("batch_size", opts.BatchSize),
		zap.Int("workers", opts.Workers),
	)

	tracer := observability.NewTableTracer(rel.Name())
	ctx, span := tracer.StartSpan(ctx, "profile_table")
	defer span.End()

	timer := metrics.NewTimer("profile_table")
	throughput := metrics.NewThroughputTracker(rel.Name())

	batches := rel.ToBatches(opts.BatchSize)
	log.Debug("profiling relation", zap.Int("batches", len(batches)))

	results := make([]batchResult, len(batches))
	work := make(chan Batch)

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range work {
				profiles, err := profileBatch(ctx, tracer, batch, opts.Profile)
				results[batch.Index] = batchResult{index: batch.Index, profiles: profiles, err: err}
				if err == nil {
					metrics.BatchesProfiled.WithLabelValues(rel.Name()).Inc()
					throughput.Increment(int64(batch.Relation.Len()))
				}
			}
		}()
	}

dispatch:
	for _, batch := range batches {
		select {
		case <-ctx.Done():
			break dispatch
		case work <- batch:
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "profiling cancelled")
	}

	// Sequential fold in batch order
	merged := make([]*profile.ColumnProfile, rel.Schema.NumColumns())
	for _, result := range results {
		if result.err != nil {
			return nil, result.err
		}
		for col, p := range result.profiles {
			if merged[col] == nil {
				merged[col] = p
				continue
			}
			next, err := profile.Merge(merged[col], p)
			if err != nil {
				return nil, err
			}
			merged[col] = next
			metrics.ProfileMerges.WithLabelValues(rel.Name()).Inc()
		}
	}

	for _, p := range merged {
		metrics.RowsProfiled.WithLabelValues(rel.Name(), p.Name).Add(float64(p.Count))
	}
	metrics.ProfileDuration.WithLabelValues("profile_table", rel.Name()).
		Observe(float64(timer.Stop().Nanoseconds()))
	metrics.Throughput.WithLabelValues(rel.Name()).Set(throughput.GetAndReset())

	log.Debug("profiled relation", zap.Int("columns", len(merged)))

	return &TableProfile{
		Table:    rel.Name(),
		RowCount: int64(rel.Len()),
		Profiles: merged,
	}, nil
}

// profileBatch profiles every column of one batch, in schema order.
func profileBatch(ctx context.Context, tracer *observability.TableTracer, batch Batch, opts profile.Options) ([]*profile.ColumnProfile, error) {
	rel := batch.Relation
	profiles := make([]*profile.ColumnProfile, rel.Schema.NumColumns())

	err := tracer.TraceBatch(ctx, batch.Index, rel.Len(), func(ctx context.Context) error {
		for i, c := range rel.Schema.Columns {
			if err := ctx.Err(); err != nil {
				return err
			}

			arr, err := rel.Collect(c.Name)
			if err != nil {
				return err
			}

			err = tracer.TraceColumn(ctx, c.Name, func(context.Context) error {
				p, perr := profile.StrategyFor(c.Type, opts).Profile(c.Name, arr)
				if perr != nil {
					return perr
				}
				profiles[i] = p
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
