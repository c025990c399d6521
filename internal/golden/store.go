package golden

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// DefaultBatchSize is the number of outcomes to buffer before flushing to the database.
	DefaultBatchSize = 100
)

// ErrNoRuns is returned when the store holds no recorded runs.
var ErrNoRuns = errors.New("no recorded runs")

// Outcome is the result of evaluating one Case.
type Outcome struct {
	Case Case
	Got  int
}

// Match reports whether the evaluated value equals the expected one.
func (o Outcome) Match() bool { return o.Got == o.Case.Want }

// Run describes one recording session.
type Run struct {
	ID        string
	Label     string
	StartedAt time.Time
}

type pendingOutcome struct {
	runID   string
	outcome Outcome
}

// Store persists golden runs and their outcomes in SQLite.
type Store struct {
	db        *sql.DB
	path      string
	batch     []pendingOutcome
	batchSize int
	mu        sync.Mutex
}

// Open opens or creates a golden result database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:        db,
		path:      path,
		batch:     make([]pendingOutcome, 0, DefaultBatchSize),
		batchSize: DefaultBatchSize,
	}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			label TEXT,
			started_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			seed INTEGER NOT NULL,
			q INTEGER NOT NULL,
			r INTEGER NOT NULL,
			freq INTEGER NOT NULL,
			oct INTEGER NOT NULL,
			want INTEGER NOT NULL,
			got INTEGER NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS result_index ON results (run_id, name);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// BeginRun registers a new run and returns its identifier.
func (s *Store) BeginRun(label string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Label:     label,
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}

	if _, err := s.db.Exec("INSERT INTO runs (id, label, started_at) VALUES (?, ?, ?)",
		run.ID, run.Label, run.StartedAt.Unix()); err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

// Record adds an outcome to the batch. When the batch is full, it is flushed.
func (s *Store) Record(runID string, o Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batch = append(s.batch, pendingOutcome{runID: runID, outcome: o})
	if len(s.batch) >= s.batchSize {
		return s.flushLocked()
	}
	return nil
}

// Flush writes any buffered outcomes to the database.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if len(s.batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO results
		(run_id, name, kind, seed, q, r, freq, oct, want, got)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range s.batch {
		c := p.outcome.Case
		if _, err := stmt.Exec(p.runID, c.Name, string(c.Kind), c.Seed, c.Q, c.R, c.Freq, c.Oct, c.Want, p.outcome.Got); err != nil {
			return fmt.Errorf("failed to insert result %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.batch = s.batch[:0]
	return nil
}

// LatestRun returns the most recently started run.
func (s *Store) LatestRun() (Run, error) {
	var (
		run     Run
		label   sql.NullString
		started int64
	)
	err := s.db.QueryRow("SELECT id, label, started_at FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1").
		Scan(&run.ID, &label, &started)
	if err == sql.ErrNoRows {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query runs: %w", err)
	}

	run.Label = label.String
	run.StartedAt = time.Unix(started, 0).UTC()
	return run, nil
}

// Outcomes returns the outcomes recorded for runID ordered by case name.
func (s *Store) Outcomes(runID string) ([]Outcome, error) {
	rows, err := s.db.Query(`SELECT name, kind, seed, q, r, freq, oct, want, got
		FROM results WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var (
			o    Outcome
			kind string
		)
		if err := rows.Scan(&o.Case.Name, &kind, &o.Case.Seed, &o.Case.Q, &o.Case.R,
			&o.Case.Freq, &o.Case.Oct, &o.Case.Want, &o.Got); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		o.Case.Kind = Kind(kind)
		out = append(out, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return out, nil
}

// Close flushes any remaining outcomes and closes the database.
func (s *Store) Close() error {
	if err := s.Flush(); err != nil {
		s.db.Close()
		return err
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
