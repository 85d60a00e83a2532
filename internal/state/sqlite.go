package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store instance. A nil logger
// discards log output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewSQLiteStoreWithDB wraps an existing database connection. Used in
// tests; the caller owns the connection's lifecycle.
func NewSQLiteStoreWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, logger: slog.New(slog.DiscardHandler)}
}

// Open opens a connection to the SQLite database. Use ":memory:" for
// an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// --- Run operations ---

// CreateRun records the start of a fit or apply execution.
func (s *SQLiteStore) CreateRun(pipeline string, kind RunKind) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:        generateID(),
		Pipeline:  pipeline,
		Kind:      kind,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Debug("creating run", "id", run.ID, "pipeline", pipeline, "kind", kind)

	_, err := s.db.Exec(
		`INSERT INTO runs (id, pipeline, kind, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Pipeline, string(run.Kind), string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as completed or failed, recording row counts.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, rowsIn, rowsOut int, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, rows_in = ?, rows_out = ?, error = ?, completed_at = ? WHERE id = ?`,
		string(status), rowsIn, rowsOut, errMsg, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, pipeline, kind, status, rows_in, rows_out, error, started_at, completed_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var kind, status string
		var errMsg sql.NullString
		var completed sql.NullTime
		if err := rows.Scan(&r.ID, &r.Pipeline, &kind, &status, &r.RowsIn, &r.RowsOut, &errMsg, &r.StartedAt, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Kind = RunKind(kind)
		r.Status = RunStatus(status)
		r.Error = errMsg.String
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// --- Snapshot operations ---

// SaveSnapshot upserts the fitted-state snapshot for a pipeline.
func (s *SQLiteStore) SaveSnapshot(pipeline string, data []byte) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	s.logger.Debug("saving snapshot", "pipeline", pipeline, "bytes", len(data))

	_, err := s.db.Exec(
		`INSERT INTO snapshots (pipeline, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(pipeline) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		pipeline, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the saved snapshot for a pipeline, or
// ErrSnapshotNotFound if fit has never been run.
func (s *SQLiteStore) LoadSnapshot(pipeline string) (*SavedSnapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var snap SavedSnapshot
	snap.Pipeline = pipeline
	err := s.db.QueryRow(
		`SELECT data, updated_at FROM snapshots WHERE pipeline = ?`, pipeline,
	).Scan(&snap.Data, &snap.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, pipeline)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &snap, nil
}
