package transform

import (
	"strings"

	"github.com/tabprep/tabprep/pkg/core"
)

// KindBooleanNormalizer is the registry kind of the boolean normalizer.
const KindBooleanNormalizer = "normalize_bool"

func init() {
	Register(Def{
		Kind:        KindBooleanNormalizer,
		Description: "Map truthy/falsy encodings to numeric 1/0, everything else to missing",
		New: func(options map[string]any) (Transformer, error) {
			var opts struct {
				Columns []string `mapstructure:"columns"`
			}
			if err := decodeOptions(KindBooleanNormalizer, options, &opts); err != nil {
				return nil, err
			}
			return NewBooleanNormalizer(opts.Columns)
		},
	})
}

// Recognized encodings, matched case-insensitively after
// stringification.
var (
	truthyTokens = map[string]struct{}{"yes": {}, "true": {}, "1": {}}
	falsyTokens  = map[string]struct{}{"no": {}, "false": {}, "0": {}}
)

// BooleanNormalizer maps heterogeneous boolean-like encodings to
// numeric 1/0. Cells matching neither set become missing. This is
// intentionally lossy: an unrecognized value (a typo'd "yse", an
// out-of-vocabulary word) is silently converted to missing rather than
// preserved or reported.
type BooleanNormalizer struct {
	columns []string
}

// NewBooleanNormalizer builds the unit; columns must not be empty.
func NewBooleanNormalizer(columns []string) (*BooleanNormalizer, error) {
	if len(columns) == 0 {
		return nil, &core.ConfigError{Unit: KindBooleanNormalizer, Reason: "columns must not be empty"}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &BooleanNormalizer{columns: cols}, nil
}

// Name returns the registered kind.
func (n *BooleanNormalizer) Name() string { return KindBooleanNormalizer }

// Fit is a no-op: the unit is a pure function of its input.
func (n *BooleanNormalizer) Fit(*core.Table) error { return nil }

// Transform rewrites every configured column into {0, 1, missing}.
func (n *BooleanNormalizer) Transform(tbl *core.Table) (*core.Table, error) {
	out := tbl.Clone()
	for _, name := range n.columns {
		vals, ok := out.Column(name)
		if !ok {
			return nil, &core.SchemaError{Unit: KindBooleanNormalizer, Column: name}
		}
		for i, v := range vals {
			vals[i] = normalizeBool(v)
		}
	}
	return out, nil
}

// normalizeBool stringifies and lower-cases a cell, then matches it
// against the fixed truthy/falsy vocabularies.
func normalizeBool(v core.Value) core.Value {
	if v.IsMissing() {
		return core.Missing
	}
	token := strings.ToLower(v.String())
	if _, ok := truthyTokens[token]; ok {
		return core.Number(1)
	}
	if _, ok := falsyTokens[token]; ok {
		return core.Number(0)
	}
	return core.Missing
}
