package transform

import (
	"github.com/tabprep/tabprep/pkg/core"
)

// KindAreaUnifier is the registry kind of the area unifier.
const KindAreaUnifier = "unify_area"

// MainAreaColumn is the column produced by the area unifier.
const MainAreaColumn = "MainArea"

func init() {
	Register(Def{
		Kind:        KindAreaUnifier,
		Description: "Merge priority-ordered area columns into a single MainArea column",
		New: func(options map[string]any) (Transformer, error) {
			var opts struct {
				AreaColumns []string `mapstructure:"area_columns"`
			}
			if err := decodeOptions(KindAreaUnifier, options, &opts); err != nil {
				return nil, err
			}
			return NewAreaUnifier(opts.AreaColumns)
		},
	})
}

// AreaUnifier collapses a priority-ordered set of measurement columns
// into one MainArea column holding, per row, the first non-missing
// value in priority order (leftmost configured column wins). The
// configured columns are removed from the output; if all of them are
// missing for a row, MainArea is missing for that row.
//
// Configured columns absent from the input are a SchemaError: the unit
// fails loudly rather than silently producing a partial merge.
type AreaUnifier struct {
	areaColumns []string
}

// NewAreaUnifier builds the unit. areaColumns is the priority order
// and must not be empty.
func NewAreaUnifier(areaColumns []string) (*AreaUnifier, error) {
	if len(areaColumns) == 0 {
		return nil, &core.ConfigError{Unit: KindAreaUnifier, Reason: "area_columns must not be empty"}
	}
	cols := make([]string, len(areaColumns))
	copy(cols, areaColumns)
	return &AreaUnifier{areaColumns: cols}, nil
}

// Name returns the registered kind.
func (u *AreaUnifier) Name() string { return KindAreaUnifier }

// Fit is a no-op: the unit is a pure function of its input.
func (u *AreaUnifier) Fit(*core.Table) error { return nil }

// Transform produces MainArea and drops the configured columns.
func (u *AreaUnifier) Transform(tbl *core.Table) (*core.Table, error) {
	sources := make([][]core.Value, len(u.areaColumns))
	for i, name := range u.areaColumns {
		vals, ok := tbl.Column(name)
		if !ok {
			return nil, &core.SchemaError{Unit: KindAreaUnifier, Column: name}
		}
		sources[i] = vals
	}

	main := make([]core.Value, tbl.NumRows())
	for row := range main {
		main[row] = core.Missing
		for _, src := range sources {
			if !src[row].IsMissing() {
				main[row] = src[row]
				break
			}
		}
	}

	out := tbl.Clone()
	out.DropColumns(u.areaColumns...)
	if err := out.SetColumn(MainAreaColumn, main); err != nil {
		return nil, err
	}
	return out, nil
}
