package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabprep/tabprep/internal/engine"
)

// NewFitCommand creates the fit command.
func NewFitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fit <input.csv>",
		Short: "Fit the pipeline on a training dataset",
		Long: `Fit every step of the pipeline on the given dataset.

Each step derives its statistics from the training data (category
frequencies, quantile bounds) and the fitted state is saved to the
state database. Use apply to replay the fitted pipeline on other
datasets.`,
		Example: `  # Fit the default pipeline.yaml on train.csv
  tabprep fit train.csv

  # Fit a specific pipeline spec
  tabprep fit --pipeline prep/listings.yaml train.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := cc.Engine.Fit(args[0])
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), "Fitted", res)
			return nil
		},
	}
}

// printResult writes the run summary shared by fit and apply.
func printResult(w io.Writer, verb string, res *engine.Result) {
	_, _ = fmt.Fprintf(w, "%s pipeline %q (%d steps)\n", verb, res.Pipeline, res.Steps)
	_, _ = fmt.Fprintf(w, "  rows:    %d in, %d out\n", res.RowsIn, res.RowsOut)
	_, _ = fmt.Fprintf(w, "  columns: %s\n", strings.Join(res.Columns, ", "))
	_, _ = fmt.Fprintf(w, "  run:     %s\n", res.RunID)
}
