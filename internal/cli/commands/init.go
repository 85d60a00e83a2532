package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tabprep/tabprep/internal/cli/config"
)

const configTemplate = `# tabprep configuration
pipeline: pipeline.yaml
state_path: .tabprep/state.db
`

const pipelineTemplate = `# Preprocessing pipeline. Fit it on training data with
# "tabprep fit train.csv", then replay it with "tabprep apply data.csv".
# Run "tabprep steps" for the full list of step kinds and their options.
name: example

steps:
  - use: group_rare
    with:
      columns: [City]
      min_frequency: 0.01

  - use: clip_outliers
    with:
      columns: [Price]
      lower_quantile: 0.01
      upper_quantile: 0.99
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tabprep project",
		Long: `Initialize a new tabprep project.

This creates:
  - tabprep.yaml configuration file
  - pipeline.yaml with an example preprocessing pipeline`,
		Example: `  # Initialize in the current directory
  tabprep init

  # Initialize in a new directory
  tabprep init my-project

  # Overwrite existing files
  tabprep init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := []struct {
		name    string
		content string
	}{
		{"tabprep.yaml", configTemplate},
		{config.DefaultPipelineFile, pipelineTemplate},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", path)
		}
		if err := os.WriteFile(path, []byte(f.content), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  1. Edit pipeline.yaml to match your dataset")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  2. Run: tabprep fit <training.csv>")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  3. Run: tabprep apply <data.csv>")
	return nil
}
