package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tabprep/tabprep/internal/describe"
	"github.com/tabprep/tabprep/internal/loader"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <input.csv>",
		Short: "Summarize the columns of a dataset",
		Long: `Profile every column of a CSV dataset: inferred type, missing and
distinct counts, and numeric statistics where applicable. Useful for
choosing thresholds and quantiles before writing a pipeline.`,
		Example: `  tabprep describe data.csv
  tabprep describe data.csv -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()

			tbl, err := loader.ReadFile(args[0])
			if err != nil {
				return err
			}

			summaries := describe.Summarize(tbl)

			header := []string{"column", "type", "rows", "missing", "distinct", "min", "max", "mean", "median", "stddev"}
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				row := []string{
					s.Name,
					s.Kind,
					strconv.Itoa(s.Rows),
					strconv.Itoa(s.Missing),
					strconv.Itoa(s.Distinct),
				}
				if s.HasStats {
					row = append(row,
						formatStat(s.Min),
						formatStat(s.Max),
						formatStat(s.Mean),
						formatStat(s.Median),
						formatStat(s.StdDev),
					)
				} else {
					row = append(row, "", "", "", "", "")
				}
				rows = append(rows, row)
			}

			return renderGrid(cmd.OutOrStdout(), cfg.OutputFormat, header, rows)
		},
	}
}

// formatStat renders a statistic with enough precision to be useful
// without drowning the table in digits.
func formatStat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
