// Package engine orchestrates preprocessing pipelines: it loads
// datasets, fits or replays pipeline transforms, and persists fitted
// state and run history through the state store.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/tabprep/tabprep/internal/loader"
	"github.com/tabprep/tabprep/internal/pipeline"
	"github.com/tabprep/tabprep/internal/state"
	"github.com/tabprep/tabprep/pkg/core"
)

// Engine ties the pipeline spec, the dataset loader and the state
// store together.
type Engine struct {
	logger       *slog.Logger
	store        *state.SQLiteStore
	pipelineFile string
}

// Config holds engine configuration.
type Config struct {
	// PipelineFile is the path to the pipeline YAML spec.
	PipelineFile string
	// StatePath is the path to the SQLite state database.
	StatePath string
	// Logger is the structured logger (optional, discards if nil).
	Logger *slog.Logger
}

// New creates an engine and opens the state store.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing engine", "pipeline_file", cfg.PipelineFile, "state_path", cfg.StatePath)

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate state store: %w", err)
	}

	return &Engine{logger: logger, store: store, pipelineFile: cfg.PipelineFile}, nil
}

// Close releases the state store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store exposes the state store for read-only command surfaces.
func (e *Engine) Store() state.Store { return e.store }

// Result summarizes a fit or apply execution.
type Result struct {
	RunID    string
	Pipeline string
	Steps    int
	RowsIn   int
	RowsOut  int
	Columns  []string
}

// Fit loads the pipeline spec and the training dataset, fits every
// step, and persists the fitted-state snapshot.
func (e *Engine) Fit(inputPath string) (*Result, error) {
	p, err := pipeline.Load(e.pipelineFile)
	if err != nil {
		return nil, err
	}

	tbl, err := loader.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("fitting pipeline", "pipeline", p.Name(), "rows", tbl.NumRows(), "steps", len(p.Steps()))

	run, err := e.store.CreateRun(p.Name(), state.RunKindFit)
	if err != nil {
		return nil, err
	}

	out, err := p.Fit(tbl)
	if err != nil {
		e.failRun(run.ID, tbl.NumRows(), err)
		return nil, err
	}

	snap, err := p.Snapshot()
	if err != nil {
		e.failRun(run.ID, tbl.NumRows(), err)
		return nil, err
	}
	data, err := snap.Marshal()
	if err != nil {
		e.failRun(run.ID, tbl.NumRows(), err)
		return nil, err
	}
	if err := e.store.SaveSnapshot(p.Name(), data); err != nil {
		e.failRun(run.ID, tbl.NumRows(), err)
		return nil, err
	}

	if err := e.store.CompleteRun(run.ID, state.RunStatusCompleted, tbl.NumRows(), out.NumRows(), ""); err != nil {
		return nil, err
	}

	e.logger.Info("pipeline fitted", "pipeline", p.Name(), "run", run.ID, "rows", out.NumRows())
	return e.result(run.ID, p.Name(), len(p.Steps()), tbl, out), nil
}

// Apply restores the fitted state for the configured pipeline and
// transforms the input dataset, writing the result to outputPath.
func (e *Engine) Apply(inputPath, outputPath string) (*Result, error) {
	p, err := pipeline.Load(e.pipelineFile)
	if err != nil {
		return nil, err
	}

	saved, err := e.store.LoadSnapshot(p.Name())
	if err != nil {
		return nil, err
	}
	snap, err := pipeline.ParseSnapshot(saved.Data)
	if err != nil {
		return nil, err
	}
	if err := p.Restore(snap); err != nil {
		return nil, err
	}

	tbl, err := loader.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("applying pipeline", "pipeline", p.Name(), "rows", tbl.NumRows())

	run, err := e.store.CreateRun(p.Name(), state.RunKindApply)
	if err != nil {
		return nil, err
	}

	out, err := p.Transform(tbl)
	if err != nil {
		e.failRun(run.ID, tbl.NumRows(), err)
		return nil, err
	}

	if err := loader.WriteFile(outputPath, out); err != nil {
		e.failRun(run.ID, tbl.NumRows(), err)
		return nil, err
	}

	if err := e.store.CompleteRun(run.ID, state.RunStatusCompleted, tbl.NumRows(), out.NumRows(), ""); err != nil {
		return nil, err
	}

	e.logger.Info("pipeline applied", "pipeline", p.Name(), "run", run.ID, "rows", out.NumRows(), "output", outputPath)
	return e.result(run.ID, p.Name(), len(p.Steps()), tbl, out), nil
}

func (e *Engine) failRun(runID string, rowsIn int, cause error) {
	if err := e.store.CompleteRun(runID, state.RunStatusFailed, rowsIn, 0, cause.Error()); err != nil {
		e.logger.Warn("failed to record run failure", "run", runID, "error", err)
	}
}

func (e *Engine) result(runID, name string, steps int, in, out *core.Table) *Result {
	return &Result{
		RunID:    runID,
		Pipeline: name,
		Steps:    steps,
		RowsIn:   in.NumRows(),
		RowsOut:  out.NumRows(),
		Columns:  out.Names(),
	}
}
