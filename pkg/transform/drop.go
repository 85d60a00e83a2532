package transform

import (
	"github.com/tabprep/tabprep/pkg/core"
)

// KindColumnDropper is the registry kind of the column dropper.
const KindColumnDropper = "drop_columns"

func init() {
	Register(Def{
		Kind:        KindColumnDropper,
		Description: "Remove a fixed set of columns, ignoring names that are absent",
		New: func(options map[string]any) (Transformer, error) {
			var opts struct {
				Columns []string `mapstructure:"columns"`
			}
			if err := decodeOptions(KindColumnDropper, options, &opts); err != nil {
				return nil, err
			}
			return NewColumnDropper(opts.Columns)
		},
	})
}

// ColumnDropper removes the configured columns. Unlike every other
// unit it tolerates configured columns that are absent from the input:
// they are silently skipped and the rest of the table is unchanged.
// Order of the remaining columns is preserved.
type ColumnDropper struct {
	columns []string
}

// NewColumnDropper builds the unit; columns must not be empty.
func NewColumnDropper(columns []string) (*ColumnDropper, error) {
	if len(columns) == 0 {
		return nil, &core.ConfigError{Unit: KindColumnDropper, Reason: "columns must not be empty"}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &ColumnDropper{columns: cols}, nil
}

// Name returns the registered kind.
func (d *ColumnDropper) Name() string { return KindColumnDropper }

// Fit is a no-op: the unit is a pure function of its input.
func (d *ColumnDropper) Fit(*core.Table) error { return nil }

// Transform removes the configured columns where present.
func (d *ColumnDropper) Transform(tbl *core.Table) (*core.Table, error) {
	out := tbl.Clone()
	out.DropColumns(d.columns...)
	return out, nil
}
