package commands

import (
	"github.com/spf13/cobra"

	"github.com/tabprep/tabprep/pkg/transform"
)

// NewStepsCommand creates the steps command.
func NewStepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List available pipeline step kinds",
		Long:  `List every transformer kind that can be used in a pipeline spec.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			header := []string{"kind", "description"}
			var rows [][]string
			for _, def := range transform.Kinds() {
				rows = append(rows, []string{def.Kind, def.Description})
			}

			return renderGrid(cmd.OutOrStdout(), cfg.OutputFormat, header, rows)
		},
	}
}
