// Package pipeline chains transformers into an ordered preprocessing
// pipeline and round-trips their fitted state.
package pipeline

import (
	"fmt"

	"github.com/tabprep/tabprep/pkg/core"
	"github.com/tabprep/tabprep/pkg/transform"
)

// Step is one named unit in a pipeline. Names key fitted-state
// snapshots, so they must be unique within a pipeline.
type Step struct {
	Name        string
	Transformer transform.Transformer
}

// Pipeline is an ordered chain of transformers. Fit runs
// fit-then-transform through the chain so each unit learns from the
// output of its predecessors; Transform replays the chain using the
// fitted parameters.
type Pipeline struct {
	name  string
	steps []Step
}

// New builds a pipeline. Step names must be non-empty and unique.
func New(name string, steps ...Step) (*Pipeline, error) {
	seen := make(map[string]bool, len(steps))
	for _, s := range steps {
		if s.Name == "" {
			return nil, fmt.Errorf("pipeline %q: step with empty name", name)
		}
		if s.Transformer == nil {
			return nil, fmt.Errorf("pipeline %q: step %q has no transformer", name, s.Name)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("pipeline %q: duplicate step name %q", name, s.Name)
		}
		seen[s.Name] = true
	}
	return &Pipeline{name: name, steps: steps}, nil
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Steps returns the steps in execution order.
func (p *Pipeline) Steps() []Step { return p.steps }

// Fit fits every step in order, feeding each step the output of the
// previous one, and returns the fully transformed table.
func (p *Pipeline) Fit(tbl *core.Table) (*core.Table, error) {
	out := tbl
	for _, s := range p.steps {
		var err error
		out, err = transform.FitTransform(s.Transformer, out)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, err)
		}
	}
	return out, nil
}

// Transform replays the chain on a new table using fitted parameters.
func (p *Pipeline) Transform(tbl *core.Table) (*core.Table, error) {
	out := tbl
	for _, s := range p.steps {
		var err error
		out, err = s.Transformer.Transform(out)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, err)
		}
	}
	return out, nil
}

// Snapshot collects the fitted state of every stateful step.
func (p *Pipeline) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{Pipeline: p.name, States: map[string]string{}}
	for _, s := range p.steps {
		st, ok := s.Transformer.(transform.Stateful)
		if !ok {
			continue
		}
		data, err := st.MarshalState()
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, err)
		}
		snap.States[s.Name] = string(data)
	}
	return snap, nil
}

// Restore loads fitted state into the pipeline's stateful steps. Every
// stateful step must have an entry in the snapshot.
func (p *Pipeline) Restore(snap *Snapshot) error {
	if snap.Pipeline != "" && snap.Pipeline != p.name {
		return fmt.Errorf("snapshot is for pipeline %q, not %q", snap.Pipeline, p.name)
	}
	for _, s := range p.steps {
		st, ok := s.Transformer.(transform.Stateful)
		if !ok {
			continue
		}
		data, ok := snap.States[s.Name]
		if !ok {
			return fmt.Errorf("snapshot has no state for step %q", s.Name)
		}
		if err := st.UnmarshalState([]byte(data)); err != nil {
			return fmt.Errorf("step %q: %w", s.Name, err)
		}
	}
	return nil
}

// Fitted reports whether every stateful step has been fit or restored.
func (p *Pipeline) Fitted() bool {
	for _, s := range p.steps {
		if st, ok := s.Transformer.(transform.Stateful); ok && !st.Fitted() {
			return false
		}
	}
	return true
}
