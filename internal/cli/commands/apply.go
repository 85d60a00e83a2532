package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	var outPath string
	var watch bool

	cmd := &cobra.Command{
		Use:   "apply <input.csv>",
		Short: "Apply the fitted pipeline to a dataset",
		Long: `Replay the fitted pipeline on a dataset and write the result.

The pipeline must have been fitted first. Apply never re-derives
statistics: the category sets and clip bounds recorded at fit time are
used as-is, so unseen data is preprocessed consistently with the
training data.`,
		Example: `  # Apply to new data, writing input.prepped.csv next to the input
  tabprep apply newdata.csv

  # Choose the output path
  tabprep apply newdata.csv --out clean.csv

  # Re-apply whenever the input file changes
  tabprep apply newdata.csv --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			input := args[0]
			output := outPath
			if output == "" {
				output = defaultOutputPath(input)
			}

			run := func() error {
				res, err := cc.Engine.Apply(input, output)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "Applied", res)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  wrote:   %s\n", output)
				return nil
			}

			if err := run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndApply(cmd, cc, input, run)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output file path (default: <input>.prepped.csv)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-apply whenever the input file changes")

	return cmd
}

// defaultOutputPath derives the output path from the input path,
// e.g. data/listings.csv -> data/listings.prepped.csv.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".prepped" + ext
}

// watchAndApply re-runs apply on every write to the input file until
// the process is interrupted. Watching the directory rather than the
// file survives editors that replace the file on save.
func watchAndApply(cmd *cobra.Command, cc *CommandContext, input string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (press Ctrl+C to stop)\n", input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != abs {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			cc.Logger.Debug("input changed, re-applying", "event", event.Op.String())
			if err := run(); err != nil {
				// Keep watching: a half-written file will trigger
				// another event once the writer finishes.
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "apply failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
