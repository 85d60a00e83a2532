package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tabprep/tabprep/pkg/transform"
)

// FileSpec is the YAML shape of a pipeline file.
type FileSpec struct {
	Name  string     `yaml:"name"`
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec declares one step: the registered kind to use and its
// options. Name defaults to the kind when omitted.
type StepSpec struct {
	Name string         `yaml:"name"`
	Use  string         `yaml:"use"`
	With map[string]any `yaml:"with"`
}

// Parse builds a pipeline from YAML.
func Parse(data []byte) (*Pipeline, error) {
	var spec FileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline spec: %w", err)
	}
	return FromSpec(&spec)
}

// Load builds a pipeline from a YAML file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// FromSpec constructs all declared steps through the transform
// registry and assembles the pipeline.
func FromSpec(spec *FileSpec) (*Pipeline, error) {
	if len(spec.Steps) == 0 {
		return nil, fmt.Errorf("pipeline %q declares no steps", spec.Name)
	}

	steps := make([]Step, 0, len(spec.Steps))
	for i, ss := range spec.Steps {
		if ss.Use == "" {
			return nil, fmt.Errorf("step %d: missing \"use\"", i)
		}
		tr, err := transform.New(ss.Use, ss.With)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		name := ss.Name
		if name == "" {
			name = ss.Use
		}
		steps = append(steps, Step{Name: name, Transformer: tr})
	}
	return New(spec.Name, steps...)
}

// Snapshot is the serialized fitted state of a pipeline, keyed by step
// name. It marshals to YAML and restores exactly: a pipeline restored
// from a snapshot produces identical Transform output.
type Snapshot struct {
	Pipeline string            `yaml:"pipeline"`
	States   map[string]string `yaml:"states"`
}

// Marshal serializes the snapshot to YAML.
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// ParseSnapshot decodes a snapshot produced by Marshal.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.States == nil {
		snap.States = map[string]string{}
	}
	return &snap, nil
}
