package config

import "fmt"

// validOutputFormats are the renderers the CLI knows how to drive.
var validOutputFormats = map[string]bool{
	"table":    true,
	"csv":      true,
	"markdown": true,
	"md":       true,
	"json":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.PipelineFile == "" {
		return fmt.Errorf("pipeline is required")
	}
	if c.OutputFormat != "" && !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (valid: table, csv, markdown, json)", c.OutputFormat)
	}
	return nil
}
