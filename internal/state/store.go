// Package state persists pipeline runs and fitted-state snapshots in
// SQLite. Snapshots round-trip exactly: a pipeline restored from the
// store reproduces identical transform output without re-deriving
// statistics.
package state

import (
	"errors"
	"time"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunKind distinguishes fit runs from apply runs.
type RunKind string

// Run kinds.
const (
	RunKindFit   RunKind = "fit"
	RunKindApply RunKind = "apply"
)

// Run is one fit or apply execution of a pipeline.
type Run struct {
	ID          string
	Pipeline    string
	Kind        RunKind
	Status      RunStatus
	RowsIn      int
	RowsOut     int
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// SavedSnapshot is a persisted fitted-state snapshot.
type SavedSnapshot struct {
	Pipeline  string
	Data      []byte
	UpdatedAt time.Time
}

// ErrSnapshotNotFound is returned when a pipeline has no saved
// fitted state.
var ErrSnapshotNotFound = errors.New("no fitted state saved for pipeline")

// Store persists runs and snapshots.
type Store interface {
	CreateRun(pipeline string, kind RunKind) (*Run, error)
	CompleteRun(id string, status RunStatus, rowsIn, rowsOut int, errMsg string) error
	ListRuns(limit int) ([]*Run, error)

	SaveSnapshot(pipeline string, data []byte) error
	LoadSnapshot(pipeline string) (*SavedSnapshot, error)

	Close() error
}
