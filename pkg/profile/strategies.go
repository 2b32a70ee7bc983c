package profile

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/types"
)

// varcharTruncate bounds the prefix of string values that contributes to
// most-frequent-value labels and hashing.
const varcharTruncate = 64

// Strategy profiles one batch of native values for one column.
type Strategy interface {
	Profile(name string, arr *types.NativeArray) (*ColumnProfile, error)
}

// StrategyFor selects the type-specific profiling strategy.
func StrategyFor(dt types.DataType, opts Options) Strategy {
	if opts.SketchSize == 0 {
		opts = DefaultOptions()
	}

	switch {
	case dt.Kind() == types.KindBoolean:
		return &booleanStrategy{opts: opts}
	case dt.IsNumeric():
		return &numericStrategy{opts: opts}
	case dt.IsTemporal():
		return &temporalStrategy{opts: opts}
	case dt.Kind() == types.KindVarchar:
		return &varcharStrategy{opts: opts}
	default:
		// ARRAY, STRUCT, BLOB, JSONB, NULL: no total order, so only the
		// exact counts are tracked
		return &complexStrategy{opts: opts}
	}
}

// observation is one non-null value reduced to the forms the profile
// core needs: an orderable scalar, a canonical label, and a float for
// histogram binning.
type observation struct {
	scalar types.Scalar
	label  string
	float  float64
	hash   uint32
}

// profileCore computes min/max, ordering, transitions, most-frequent
// values, the optional histogram, and the distinct sketch over the
// non-null observations of one batch.
func profileCore(p *ColumnProfile, opts Options, obs []observation, withBins bool) {
	if len(obs) == 0 {
		return
	}

	min := obs[0].scalar
	max := obs[0].scalar
	freq := make(map[string]int64, len(obs))
	floats := make([]float64, len(obs))
	sketch := newKMVSketch(opts.SketchSize)

	freq[obs[0].label]++
	floats[0] = obs[0].float
	sketch.Add(obs[0].hash)

	for i := 1; i < len(obs); i++ {
		o := obs[i]
		min = types.MinScalar(min, o.scalar)
		max = types.MaxScalar(max, o.scalar)
		freq[o.label]++
		floats[i] = o.float
		sketch.Add(o.hash)

		if o.label != obs[i-1].label {
			p.Transitions++
		}

		switch cmp := o.scalar.Compare(obs[i-1].scalar); {
		case cmp > 0:
			if p.Ordering == OrderingUnset {
				p.Ordering = OrderingAscending
			} else if p.Ordering == OrderingDescending {
				p.Ordering = OrderingMixed
			}
		case cmp < 0:
			if p.Ordering == OrderingUnset {
				p.Ordering = OrderingDescending
			} else if p.Ordering == OrderingAscending {
				p.Ordering = OrderingMixed
			}
		}
	}

	p.Minimum = &min
	p.Maximum = &max
	p.MostFrequentValues, p.MostFrequentCounts = topFrequent(freq, opts.MFVSize)
	p.Sketch = sketch.Values()

	if withBins {
		p.Bins = equalWidthBins(floats, min.Float64(), max.Float64(), opts.HistogramBins)
	}
}

// topFrequent returns the n highest-count labels, count-descending with
// labels as the tie-break for determinism.
func topFrequent(freq map[string]int64, n int) ([]string, []int64) {
	labels := make([]string, 0, len(freq))
	for label := range freq {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if freq[labels[i]] != freq[labels[j]] {
			return freq[labels[i]] > freq[labels[j]]
		}
		return labels[i] < labels[j]
	})

	if len(labels) > n {
		labels = labels[:n]
	}
	counts := make([]int64, len(labels))
	for i, label := range labels {
		counts[i] = freq[label]
	}
	return labels, counts
}

// formatValue renders a canonical label for any native value.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case time.Duration:
		return x.String()
	case decimal.Decimal:
		return x.String()
	case []byte:
		return string(x)
	default:
		return types.Infer(v).String()
	}
}

// numericStrategy profiles INTEGER, DOUBLE and DECIMAL batches.
type numericStrategy struct {
	opts Options
}

func (s *numericStrategy) Profile(name string, arr *types.NativeArray) (*ColumnProfile, error) {
	p := NewColumnProfile(name, arr.DataType, s.opts)
	p.Count = int64(arr.Len())

	obs := make([]observation, 0, arr.Len())
	for _, v := range arr.Values {
		if v == nil {
			p.Missing++
			continue
		}
		o, err := numericObservation(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeData, "column %s", name)
		}
		obs = append(obs, o)
	}

	profileCore(p, s.opts, obs, true)
	return p, nil
}

func numericObservation(v any) (observation, error) {
	switch x := v.(type) {
	case int64:
		return observation{
			scalar: types.Int64Scalar(x),
			label:  strconv.FormatInt(x, 10),
			float:  float64(x),
			hash:   hashValue(x),
		}, nil
	case float64:
		return observation{
			scalar: types.Float64Scalar(x),
			label:  strconv.FormatFloat(x, 'g', -1, 64),
			float:  x,
			hash:   hashValue(x),
		}, nil
	case decimal.Decimal:
		f := x.InexactFloat64()
		return observation{
			scalar: types.Float64Scalar(f),
			label:  x.String(),
			float:  f,
			hash:   hashValue(x),
		}, nil
	case int:
		return numericObservation(int64(x))
	case int32:
		return numericObservation(int64(x))
	case float32:
		return numericObservation(float64(x))
	default:
		return observation{}, errors.Newf(errors.ErrorTypeUnsupportedType,
			"cannot profile %T as numeric", v)
	}
}

// varcharStrategy profiles string batches. Min/max and ordering use the
// prefix ordering key, a documented prefix-only approximation; labels are
// truncated to a bounded prefix. Strings produce no histogram bins.
type varcharStrategy struct {
	opts Options
}

func (s *varcharStrategy) Profile(name string, arr *types.NativeArray) (*ColumnProfile, error) {
	p := NewColumnProfile(name, arr.DataType, s.opts)
	p.Count = int64(arr.Len())

	obs := make([]observation, 0, arr.Len())
	for _, v := range arr.Values {
		if v == nil {
			p.Missing++
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData,
				"column %s: cannot profile %T as varchar", name, v)
		}
		if len(str) > varcharTruncate {
			str = str[:varcharTruncate]
		}
		key := types.StringOrderKey(str)
		obs = append(obs, observation{
			scalar: types.Int64Scalar(key),
			label:  str,
			hash:   hashValue(str),
		})
	}

	profileCore(p, s.opts, obs, false)
	return p, nil
}

// booleanStrategy tracks counts plus the two fixed labels.
type booleanStrategy struct {
	opts Options
}

func (s *booleanStrategy) Profile(name string, arr *types.NativeArray) (*ColumnProfile, error) {
	p := NewColumnProfile(name, arr.DataType, s.opts)
	p.Count = int64(arr.Len())

	var trues, falses int64
	for _, v := range arr.Values {
		if v == nil {
			p.Missing++
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData,
				"column %s: cannot profile %T as boolean", name, v)
		}
		if b {
			trues++
		} else {
			falses++
		}
	}

	p.MostFrequentValues = []string{"True", "False"}
	p.MostFrequentCounts = []int64{trues, falses}
	return p, nil
}

// temporalStrategy converts DATE/TIMESTAMP to epoch seconds and
// TIME/INTERVAL to duration seconds, then delegates to the numeric core.
type temporalStrategy struct {
	opts Options
}

func (s *temporalStrategy) Profile(name string, arr *types.NativeArray) (*ColumnProfile, error) {
	p := NewColumnProfile(name, arr.DataType, s.opts)
	p.Count = int64(arr.Len())

	obs := make([]observation, 0, arr.Len())
	for _, v := range arr.Values {
		if v == nil {
			p.Missing++
			continue
		}
		epoch, err := epochSeconds(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeData, "column %s", name)
		}
		obs = append(obs, observation{
			scalar: types.Int64Scalar(epoch),
			label:  strconv.FormatInt(epoch, 10),
			float:  float64(epoch),
			hash:   hashValue(epoch),
		})
	}

	profileCore(p, s.opts, obs, true)
	return p, nil
}

func epochSeconds(v any) (int64, error) {
	switch x := v.(type) {
	case time.Time:
		return x.Unix(), nil
	case time.Duration:
		return int64(x / time.Second), nil
	case int64:
		return x, nil
	default:
		return 0, errors.Newf(errors.ErrorTypeUnsupportedType,
			"cannot profile %T as temporal", v)
	}
}

// complexStrategy covers types without a total order: exact counts only.
type complexStrategy struct {
	opts Options
}

func (s *complexStrategy) Profile(name string, arr *types.NativeArray) (*ColumnProfile, error) {
	p := NewColumnProfile(name, arr.DataType, s.opts)
	p.Count = int64(arr.Len())
	p.Missing = int64(arr.Missing())
	return p, nil
}
