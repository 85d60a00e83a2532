package transform

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tabprep/tabprep/pkg/core"
)

// KindRareCategoryGrouper is the registry kind of the rare-category grouper.
const KindRareCategoryGrouper = "group_rare"

// OtherCategory is the literal category rare values are rewritten to.
const OtherCategory = "Other"

// DefaultMinFrequency is the default relative-frequency threshold.
const DefaultMinFrequency = 0.01

func init() {
	Register(Def{
		Kind:        KindRareCategoryGrouper,
		Description: "Group rare categorical values into an \"Other\" category",
		New: func(options map[string]any) (Transformer, error) {
			opts := struct {
				Columns      []string `mapstructure:"columns"`
				MinFrequency float64  `mapstructure:"min_frequency"`
			}{MinFrequency: DefaultMinFrequency}
			if err := decodeOptions(KindRareCategoryGrouper, options, &opts); err != nil {
				return nil, err
			}
			return NewRareCategoryGrouper(opts.Columns, opts.MinFrequency)
		},
	})
}

// RareCategoryGrouper learns, per configured column, the set of values
// whose relative frequency at fit time is at least the threshold, and
// rewrites everything outside that set to OtherCategory.
//
// Frequency convention: counts are divided by the total row count
// including missing rows. Missing cells are never counted as a
// category and transform preserves them as missing, never "Other".
// A category at exactly the threshold is retained.
type RareCategoryGrouper struct {
	columns      []string
	minFrequency float64

	// frequent maps column name to the canonical keys (core.Value.Key)
	// of the retained values. Immutable after Fit.
	frequent map[string]map[string]struct{}
	fitted   bool
}

// NewRareCategoryGrouper builds the unit. minFrequency must lie in
// (0, 1) and columns must not be empty.
func NewRareCategoryGrouper(columns []string, minFrequency float64) (*RareCategoryGrouper, error) {
	if len(columns) == 0 {
		return nil, &core.ConfigError{Unit: KindRareCategoryGrouper, Reason: "columns must not be empty"}
	}
	if minFrequency <= 0 || minFrequency >= 1 {
		return nil, &core.ConfigError{Unit: KindRareCategoryGrouper, Reason: "min_frequency must be in (0, 1)"}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &RareCategoryGrouper{columns: cols, minFrequency: minFrequency}, nil
}

// Name returns the registered kind.
func (g *RareCategoryGrouper) Name() string { return KindRareCategoryGrouper }

// Fitted reports whether frequent sets have been learned or restored.
func (g *RareCategoryGrouper) Fitted() bool { return g.fitted }

// Fit computes the frequent-value set for every configured column.
// Re-fitting on the same data yields identical sets.
func (g *RareCategoryGrouper) Fit(tbl *core.Table) error {
	frequent := make(map[string]map[string]struct{}, len(g.columns))
	total := tbl.NumRows()

	for _, name := range g.columns {
		vals, ok := tbl.Column(name)
		if !ok {
			return &core.SchemaError{Unit: KindRareCategoryGrouper, Column: name}
		}

		counts := make(map[string]int)
		for _, v := range vals {
			if v.IsMissing() {
				continue
			}
			counts[v.Key()]++
		}

		kept := make(map[string]struct{})
		for key, n := range counts {
			if total > 0 && float64(n)/float64(total) >= g.minFrequency {
				kept[key] = struct{}{}
			}
		}
		frequent[name] = kept
	}

	g.frequent = frequent
	g.fitted = true
	return nil
}

// Transform rewrites values outside the fit-time frequent set to
// OtherCategory. Missing cells pass through unchanged.
func (g *RareCategoryGrouper) Transform(tbl *core.Table) (*core.Table, error) {
	if !g.fitted {
		return nil, &core.NotFittedError{Unit: KindRareCategoryGrouper}
	}

	out := tbl.Clone()
	for _, name := range g.columns {
		vals, ok := out.Column(name)
		if !ok {
			return nil, &core.SchemaError{Unit: KindRareCategoryGrouper, Column: name}
		}
		kept := g.frequent[name]
		for i, v := range vals {
			if v.IsMissing() {
				continue
			}
			if _, ok := kept[v.Key()]; !ok {
				vals[i] = core.String(OtherCategory)
			}
		}
	}
	return out, nil
}

// grouperState is the serialized form of the fitted parameters.
// Keys use the canonical core.Value.Key encoding.
type grouperState struct {
	Frequent map[string][]string `yaml:"frequent"`
}

// MarshalState serializes the frequent sets. Keys are sorted so the
// snapshot is deterministic.
func (g *RareCategoryGrouper) MarshalState() ([]byte, error) {
	if !g.fitted {
		return nil, &core.NotFittedError{Unit: KindRareCategoryGrouper}
	}
	st := grouperState{Frequent: make(map[string][]string, len(g.frequent))}
	for col, kept := range g.frequent {
		keys := make([]string, 0, len(kept))
		for k := range kept {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		st.Frequent[col] = keys
	}
	return yaml.Marshal(st)
}

// UnmarshalState restores frequent sets produced by MarshalState.
func (g *RareCategoryGrouper) UnmarshalState(data []byte) error {
	var st grouperState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return err
	}
	frequent := make(map[string]map[string]struct{}, len(st.Frequent))
	for col, keys := range st.Frequent {
		kept := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			kept[k] = struct{}{}
		}
		frequent[col] = kept
	}
	g.frequent = frequent
	g.fitted = true
	return nil
}
