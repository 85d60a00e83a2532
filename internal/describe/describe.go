// Package describe computes per-column summary statistics for
// inspecting datasets before and after preprocessing.
package describe

import (
	"github.com/montanaflynn/stats"

	"github.com/tabprep/tabprep/pkg/core"
)

// ColumnSummary holds the profile of one column.
type ColumnSummary struct {
	Name     string
	Kind     string
	Rows     int
	Missing  int
	Distinct int

	// Numeric statistics, valid only when HasStats is true.
	HasStats bool
	Min      float64
	Max      float64
	Mean     float64
	Median   float64
	StdDev   float64
}

// Summarize profiles every column of a table.
func Summarize(tbl *core.Table) []ColumnSummary {
	cols := tbl.Columns()
	out := make([]ColumnSummary, 0, len(cols))
	for _, c := range cols {
		out = append(out, summarizeColumn(c))
	}
	return out
}

func summarizeColumn(c core.Column) ColumnSummary {
	s := ColumnSummary{Name: c.Name, Kind: core.KindMissing.String(), Rows: len(c.Values)}

	distinct := make(map[string]struct{})
	var nums []float64
	for _, v := range c.Values {
		if v.IsMissing() {
			s.Missing++
			continue
		}
		s.Kind = v.Kind().String()
		distinct[v.Key()] = struct{}{}
		if f, ok := v.Number(); ok {
			nums = append(nums, f)
		}
	}
	s.Distinct = len(distinct)

	if len(nums) == 0 {
		return s
	}

	// The stats helpers only fail on empty input, which is excluded
	// above.
	data := stats.Float64Data(nums)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)
	s.StdDev, _ = stats.StandardDeviation(data)
	s.HasStats = true
	return s
}
