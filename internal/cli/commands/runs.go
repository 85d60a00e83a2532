package commands

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent fit and apply runs",
		Long:  `List recent pipeline runs recorded in the state database, newest first.`,
		Example: `  tabprep runs
  tabprep runs --limit 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := cc.Engine.Store().ListRuns(limit)
			if err != nil {
				return err
			}

			header := []string{"run", "pipeline", "kind", "status", "rows in", "rows out", "started", "duration", "error"}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				duration := ""
				if r.CompletedAt != nil {
					duration = r.CompletedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
				}
				rows = append(rows, []string{
					shortID(r.ID),
					r.Pipeline,
					string(r.Kind),
					string(r.Status),
					strconv.Itoa(r.RowsIn),
					strconv.Itoa(r.RowsOut),
					r.StartedAt.Local().Format("2006-01-02 15:04:05"),
					duration,
					r.Error,
				})
			}

			return renderGrid(cmd.OutOrStdout(), cc.Cfg.OutputFormat, header, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

// shortID abbreviates a run UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
