package commands

import (
	"github.com/spf13/cobra"

	"github.com/tabprep/tabprep/internal/loader"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <input.csv>",
		Short: "Preview the rows of a dataset",
		Long:  `Load a CSV dataset and print the first rows with inferred column types.`,
		Example: `  # Show the first 10 rows
  tabprep show data.csv

  # Show more rows as markdown
  tabprep show data.csv --limit 50 -o markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()

			tbl, err := loader.ReadFile(args[0])
			if err != nil {
				return err
			}

			n := tbl.NumRows()
			if limit > 0 && limit < n {
				n = limit
			}

			header := tbl.Names()
			rows := make([][]string, 0, n)
			cols := tbl.Columns()
			for i := 0; i < n; i++ {
				row := make([]string, len(cols))
				for j, c := range cols {
					row[j] = c.Values[i].String()
				}
				rows = append(rows, row)
			}

			return renderGrid(cmd.OutOrStdout(), cfg.OutputFormat, header, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of rows to show (0 for all)")

	return cmd
}
