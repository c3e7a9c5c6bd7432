package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusNoop      = "noop"
	StatusFailed    = "failed"
)

// Run is one row of the runs table.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	Message    string
	Produced   int
	Delivered  int
}

// Descriptor is one produced descriptor.
type Descriptor struct {
	RunID     string
	Filename  string
	UniqueID  string
	Path      string
	CreatedAt time.Time
}

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, runID string, started time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, started_at, status) VALUES (?, ?, ?)",
		runID, formatTime(started), StatusRunning,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordDescriptor records a descriptor produced by runID.
func (s *Store) RecordDescriptor(ctx context.Context, runID string, d Descriptor) error {
	created := d.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO descriptors (run_id, filename, unique_id, path, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		runID, d.Filename, d.UniqueID, d.Path, formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("insert descriptor: %w", err)
	}
	return nil
}

// RecordDelivery records an upload attempt. A nil deliveryErr means success.
func (s *Store) RecordDelivery(ctx context.Context, runID, path string, deliveryErr error) error {
	var message sql.NullString
	if deliveryErr != nil {
		message = sql.NullString{String: deliveryErr.Error(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO deliveries (run_id, path, attempted_at, error) VALUES (?, ?, ?, ?)",
		runID, path, formatTime(time.Now()), message,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// FinishRun stamps the outcome of a run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, message = ?, produced = ?, delivered = ?
         WHERE id = ?`,
		formatTime(finished), run.Status, nullableString(run.Message), run.Produced, run.Delivered, run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", run.ID, sql.ErrNoRows)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, status, message, produced, delivered
         FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  string
			finished sql.NullString
			message  sql.NullString
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.Status, &message, &run.Produced, &run.Delivered); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		if finished.Valid {
			run.FinishedAt = parseTime(finished.String)
		}
		run.Message = message.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DescriptorsByUniqueID returns every recorded production of a descriptor id.
func (s *Store) DescriptorsByUniqueID(ctx context.Context, uniqueID string) ([]Descriptor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, filename, unique_id, path, created_at
         FROM descriptors WHERE unique_id = ? ORDER BY id`,
		uniqueID,
	)
	if err != nil {
		return nil, fmt.Errorf("query descriptors: %w", err)
	}
	defer rows.Close()

	var out []Descriptor
	for rows.Next() {
		var d Descriptor
		var created string
		if err := rows.Scan(&d.RunID, &d.Filename, &d.UniqueID, &d.Path, &created); err != nil {
			return nil, fmt.Errorf("scan descriptor: %w", err)
		}
		d.CreatedAt = parseTime(created)
		out = append(out, d)
	}
	return out, rows.Err()
}

// FailedDeliveries returns the paths whose upload failed during runID.
func (s *Store) FailedDeliveries(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path FROM deliveries WHERE run_id = ? AND error IS NOT NULL ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// IsSchemaMismatch reports whether err came from an incompatible ledger file.
func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}
