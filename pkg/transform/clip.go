package transform

import (
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tabprep/tabprep/pkg/core"
)

// KindOutlierClipper is the registry kind of the outlier clipper.
const KindOutlierClipper = "clip_outliers"

// Default quantile fractions for clipping.
const (
	DefaultLowerQuantile = 0.01
	DefaultUpperQuantile = 0.99
)

func init() {
	Register(Def{
		Kind:        KindOutlierClipper,
		Description: "Clip numeric values into learned per-column quantile bounds",
		New: func(options map[string]any) (Transformer, error) {
			opts := struct {
				Columns       []string `mapstructure:"columns"`
				LowerQuantile float64  `mapstructure:"lower_quantile"`
				UpperQuantile float64  `mapstructure:"upper_quantile"`
			}{LowerQuantile: DefaultLowerQuantile, UpperQuantile: DefaultUpperQuantile}
			if err := decodeOptions(KindOutlierClipper, options, &opts); err != nil {
				return nil, err
			}
			return NewOutlierClipper(opts.Columns, opts.LowerQuantile, opts.UpperQuantile)
		},
	})
}

// Bounds is a fitted (lower, upper) clip range for one column.
type Bounds struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// OutlierClipper learns per-column quantile bounds at fit time and
// clips numeric values into [lower, upper] at transform time. Values
// inside the range and missing cells are unchanged; no rows are added
// or removed and no missing values are introduced, so repeated
// transforms are idempotent.
type OutlierClipper struct {
	columns       []string
	lowerQuantile float64
	upperQuantile float64

	// bounds is immutable after Fit. Columns with no non-missing
	// numeric values at fit time have no entry and are left untouched.
	bounds map[string]Bounds
	fitted bool
}

// NewOutlierClipper builds the unit. Quantile fractions must satisfy
// 0 <= lower < upper <= 1 and columns must not be empty.
func NewOutlierClipper(columns []string, lowerQuantile, upperQuantile float64) (*OutlierClipper, error) {
	if len(columns) == 0 {
		return nil, &core.ConfigError{Unit: KindOutlierClipper, Reason: "columns must not be empty"}
	}
	if lowerQuantile < 0 || upperQuantile > 1 || lowerQuantile >= upperQuantile {
		return nil, &core.ConfigError{Unit: KindOutlierClipper, Reason: "quantiles must satisfy 0 <= lower < upper <= 1"}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &OutlierClipper{columns: cols, lowerQuantile: lowerQuantile, upperQuantile: upperQuantile}, nil
}

// Name returns the registered kind.
func (c *OutlierClipper) Name() string { return KindOutlierClipper }

// Fitted reports whether bounds have been learned or restored.
func (c *OutlierClipper) Fitted() bool { return c.fitted }

// Fit computes the quantile bounds for every configured column over
// its non-missing numeric values.
func (c *OutlierClipper) Fit(tbl *core.Table) error {
	bounds := make(map[string]Bounds, len(c.columns))
	for _, name := range c.columns {
		vals, ok := tbl.Column(name)
		if !ok {
			return &core.SchemaError{Unit: KindOutlierClipper, Column: name}
		}

		nums := make([]float64, 0, len(vals))
		for _, v := range vals {
			if f, ok := v.Number(); ok && !math.IsNaN(f) {
				nums = append(nums, f)
			}
		}
		if len(nums) == 0 {
			continue
		}
		sort.Float64s(nums)
		bounds[name] = Bounds{
			Lower: quantile(nums, c.lowerQuantile),
			Upper: quantile(nums, c.upperQuantile),
		}
	}
	c.bounds = bounds
	c.fitted = true
	return nil
}

// Transform clips numeric cells into the fitted bounds.
func (c *OutlierClipper) Transform(tbl *core.Table) (*core.Table, error) {
	if !c.fitted {
		return nil, &core.NotFittedError{Unit: KindOutlierClipper}
	}

	out := tbl.Clone()
	for _, name := range c.columns {
		vals, ok := out.Column(name)
		if !ok {
			return nil, &core.SchemaError{Unit: KindOutlierClipper, Column: name}
		}
		b, ok := c.bounds[name]
		if !ok {
			continue
		}
		for i, v := range vals {
			f, ok := v.Number()
			if !ok {
				continue
			}
			switch {
			case f < b.Lower:
				vals[i] = core.Number(b.Lower)
			case f > b.Upper:
				vals[i] = core.Number(b.Upper)
			}
		}
	}
	return out, nil
}

// clipperState is the serialized form of the fitted parameters.
type clipperState struct {
	Bounds map[string]Bounds `yaml:"bounds"`
}

// MarshalState serializes the fitted bounds.
func (c *OutlierClipper) MarshalState() ([]byte, error) {
	if !c.fitted {
		return nil, &core.NotFittedError{Unit: KindOutlierClipper}
	}
	return yaml.Marshal(clipperState{Bounds: c.bounds})
}

// UnmarshalState restores bounds produced by MarshalState.
func (c *OutlierClipper) UnmarshalState(data []byte) error {
	var st clipperState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return err
	}
	if st.Bounds == nil {
		st.Bounds = map[string]Bounds{}
	}
	c.bounds = st.Bounds
	c.fitted = true
	return nil
}

// quantile computes the linear-interpolation (Hyndman–Fan type 7)
// quantile of an ascending-sorted, non-empty slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
