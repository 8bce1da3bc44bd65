package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
	"github.com/nickc01/rvc-model-fetcher/internal/port"
)

// Ledger records fetch runs and their per-artifact outcomes in SQLite.
// It is the only persistence in the tool and is entirely optional; a run
// without a ledger leaves nothing on disk but the model files.
type Ledger struct {
	db *sql.DB
}

// Ensure Ledger implements port.RunRecorder
var _ port.RunRecorder = (*Ledger)(nil)

// Open opens (and migrates) the ledger database at dbPath
func Open(dbPath string) (*Ledger, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	ledger := &Ledger{db: db}

	if err := ledger.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate ledger database: %w", err)
	}

	return ledger, nil
}

// Close closes the database connection
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// migrate creates or updates the ledger schema
func (l *Ledger) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP,
			successful INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			remote_path TEXT NOT NULL,
			tier TEXT NOT NULL,
			outcome TEXT NOT NULL,
			bytes_written INTEGER NOT NULL DEFAULT 0,
			error_detail TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id)`,
	}

	for _, migration := range migrations {
		if _, err := l.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// BeginRun opens a new run and returns its identifier
func (l *Ledger) BeginRun(startedAt time.Time) (string, error) {
	id := uuid.NewString()

	_, err := l.db.Exec(
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, startedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	return id, nil
}

// RecordResult appends one artifact result to a run
func (l *Ledger) RecordResult(runID string, result domain.FetchResult) error {
	_, err := l.db.Exec(
		`INSERT INTO results (run_id, remote_path, tier, outcome, bytes_written, error_detail)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID,
		result.Spec.RemotePath,
		result.Spec.Tier.String(),
		result.Outcome.String(),
		result.BytesWritten,
		result.ErrorDetail,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	return nil
}

// FinishRun closes a run with its final tally
func (l *Ledger) FinishRun(runID string, tally domain.FetchTally, finishedAt time.Time) error {
	_, err := l.db.Exec(
		`UPDATE runs SET finished_at = ?, successful = ?, failed = ? WHERE id = ?`,
		finishedAt.UTC(), tally.Successful, tally.Failed, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	return nil
}

// RunSummary is a persisted run as shown by the history command
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Successful int
	Failed     int
}

// RecentRuns returns up to limit runs, newest first
func (l *Ledger) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.Query(
		`SELECT id, started_at, finished_at, successful, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &run.StartedAt, &finished, &run.Successful, &run.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// RunResults returns the per-artifact results of a run in insertion order
func (l *Ledger) RunResults(runID string) ([]domain.FetchResult, error) {
	rows, err := l.db.Query(
		`SELECT remote_path, tier, outcome, bytes_written, error_detail
		 FROM results WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []domain.FetchResult
	for rows.Next() {
		var (
			remotePath, tierName, outcomeName string
			bytesWritten                      int64
			errorDetail                       sql.NullString
		)
		if err := rows.Scan(&remotePath, &tierName, &outcomeName, &bytesWritten, &errorDetail); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		tier, err := domain.ParseTier(tierName)
		if err != nil {
			return nil, fmt.Errorf("result %s: %w", remotePath, err)
		}
		outcome, err := domain.ParseOutcome(outcomeName)
		if err != nil {
			return nil, fmt.Errorf("result %s: %w", remotePath, err)
		}

		results = append(results, domain.FetchResult{
			Spec:         domain.ArtifactSpec{RemotePath: remotePath, Tier: tier},
			Outcome:      outcome,
			BytesWritten: bytesWritten,
			ErrorDetail:  errorDetail.String,
		})
	}

	return results, rows.Err()
}
