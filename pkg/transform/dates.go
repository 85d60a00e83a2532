package transform

import (
	"github.com/araddon/dateparse"

	"github.com/tabprep/tabprep/pkg/core"
)

// KindDateFeatureExtractor is the registry kind of the date feature extractor.
const KindDateFeatureExtractor = "extract_date"

// DefaultDatePrefix is the default naming prefix for derived columns.
const DefaultDatePrefix = "Publish"

func init() {
	Register(Def{
		Kind:        KindDateFeatureExtractor,
		Description: "Derive {prefix}Year and {prefix}Month columns from a date column",
		New: func(options map[string]any) (Transformer, error) {
			opts := struct {
				Column string `mapstructure:"column"`
				Prefix string `mapstructure:"prefix"`
			}{Prefix: DefaultDatePrefix}
			if err := decodeOptions(KindDateFeatureExtractor, options, &opts); err != nil {
				return nil, err
			}
			return NewDateFeatureExtractor(opts.Column, opts.Prefix)
		},
	})
}

// DateFeatureExtractor parses one source column into calendar dates
// and derives {prefix}Year and {prefix}Month integer columns. Parsing
// is lenient: a cell that cannot be parsed yields missing for both
// derived columns and never raises an error. The source column is
// removed from the output.
type DateFeatureExtractor struct {
	column string
	prefix string
}

// NewDateFeatureExtractor builds the unit. column is required; an
// empty prefix falls back to DefaultDatePrefix.
func NewDateFeatureExtractor(column, prefix string) (*DateFeatureExtractor, error) {
	if column == "" {
		return nil, &core.ConfigError{Unit: KindDateFeatureExtractor, Reason: "column must not be empty"}
	}
	if prefix == "" {
		prefix = DefaultDatePrefix
	}
	return &DateFeatureExtractor{column: column, prefix: prefix}, nil
}

// Name returns the registered kind.
func (x *DateFeatureExtractor) Name() string { return KindDateFeatureExtractor }

// Fit is a no-op: the unit is a pure function of its input.
func (x *DateFeatureExtractor) Fit(*core.Table) error { return nil }

// YearColumn returns the name of the derived year column.
func (x *DateFeatureExtractor) YearColumn() string { return x.prefix + "Year" }

// MonthColumn returns the name of the derived month column.
func (x *DateFeatureExtractor) MonthColumn() string { return x.prefix + "Month" }

// Transform derives the year/month columns and drops the source.
func (x *DateFeatureExtractor) Transform(tbl *core.Table) (*core.Table, error) {
	src, ok := tbl.Column(x.column)
	if !ok {
		return nil, &core.SchemaError{Unit: KindDateFeatureExtractor, Column: x.column}
	}

	years := make([]core.Value, len(src))
	months := make([]core.Value, len(src))
	for i, v := range src {
		years[i], months[i] = core.Missing, core.Missing

		if t, ok := v.Time(); ok {
			years[i] = core.Number(float64(t.Year()))
			months[i] = core.Number(float64(t.Month()))
			continue
		}
		if v.IsMissing() {
			continue
		}
		// Best-effort parse of the cell's string form; failures
		// become missing.
		t, err := dateparse.ParseAny(v.String())
		if err != nil {
			continue
		}
		years[i] = core.Number(float64(t.Year()))
		months[i] = core.Number(float64(t.Month()))
	}

	out := tbl.Clone()
	out.DropColumns(x.column)
	if err := out.SetColumn(x.YearColumn(), years); err != nil {
		return nil, err
	}
	if err := out.SetColumn(x.MonthColumn(), months); err != nil {
		return nil, err
	}
	return out, nil
}
