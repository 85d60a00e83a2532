// Package config provides configuration management for the tabprep CLI.
//
// Configuration is layered: built-in defaults, an optional tabprep.yaml
// file, TABPREP_* environment variables, and finally CLI flags, each
// layer overriding the one below it.
package config

// Default configuration values.
const (
	DefaultPipelineFile = "pipeline.yaml"
	DefaultStateFile    = ".tabprep/state.db"
	DefaultOutput       = "table"
)

// Config holds all CLI configuration options.
type Config struct {
	PipelineFile string `koanf:"pipeline"`
	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}
