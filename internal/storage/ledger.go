package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Ledger records generation runs and their outputs. Outputs are keyed by
// prompt hash and model, so an unchanged unit can reuse its earlier answer.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one generate invocation.
type Run struct {
	ID         string
	RootDir    string
	Model      string
	StartedAt  time.Time
	FinishedAt *time.Time
	Stats      RunStats
}

// RunStats are the counters stored when a run finishes.
type RunStats struct {
	FilesTotal     int
	FilesSkipped   int
	FilesNoUnits   int
	FilesFailed    int
	UnitsGenerated int
	CacheHits      int
}

// Generation is one stored backend answer.
type Generation struct {
	PromptHash string
	Model      string
	RunID      string
	FilePath   string
	Ordinal    int // 0 for single-pass class reports
	Output     string
}

// Open opens (creating if needed) the ledger database at path.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	// SQLite allows one writer; workers share a single connection.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewLedger(db), nil
}

// NewLedger wraps an already-initialised database.
func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// HashPrompt returns the hex SHA-256 of a prompt.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// StartRun inserts a new run and returns its ID.
func (l *Ledger) StartRun(rootDir, model string) (string, error) {
	id := uuid.NewString()
	_, err := l.db.Exec(
		`INSERT INTO runs (id, root_dir, model, started_at) VALUES (?, ?, ?, ?)`,
		id, rootDir, model, formatTime(l.now()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's end time and counters.
func (l *Ledger) FinishRun(runID string, stats RunStats) error {
	res, err := l.db.Exec(`
		UPDATE runs SET finished_at = ?, files_total = ?, files_skipped = ?, files_no_units = ?,
		    files_failed = ?, units_generated = ?, cache_hits = ?
		WHERE id = ?`,
		formatTime(l.now()), stats.FilesTotal, stats.FilesSkipped, stats.FilesNoUnits,
		stats.FilesFailed, stats.UnitsGenerated, stats.CacheHits, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// Lookup returns a stored output for promptHash and model.
func (l *Ledger) Lookup(promptHash, model string) (string, bool, error) {
	var output string
	err := l.db.QueryRow(
		`SELECT output FROM generations WHERE prompt_hash = ? AND model = ?`,
		promptHash, model,
	).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up generation: %w", err)
	}
	return output, true, nil
}

// Record stores a generation, replacing any earlier output for the same
// prompt and model.
func (l *Ledger) Record(g Generation) error {
	_, err := l.db.Exec(`
		INSERT INTO generations (prompt_hash, model, run_id, file_path, ordinal, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(prompt_hash, model) DO UPDATE SET
		    run_id = excluded.run_id,
		    file_path = excluded.file_path,
		    ordinal = excluded.ordinal,
		    output = excluded.output,
		    created_at = excluded.created_at`,
		g.PromptHash, g.Model, g.RunID, g.FilePath, g.Ordinal, g.Output, formatTime(l.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to record generation for %s: %w", g.FilePath, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (l *Ledger) Runs(limit int) ([]Run, error) {
	rows, err := l.db.Query(`
		SELECT id, root_dir, model, started_at, finished_at, files_total, files_skipped,
		       files_no_units, files_failed, units_generated, cache_hits
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.RootDir, &r.Model, &started, &finished,
			&r.Stats.FilesTotal, &r.Stats.FilesSkipped, &r.Stats.FilesNoUnits,
			&r.Stats.FilesFailed, &r.Stats.UnitsGenerated, &r.Stats.CacheHits); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if finished.Valid {
			t, err := parseTime(finished.String)
			if err != nil {
				return nil, err
			}
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountGenerations returns the number of stored outputs.
func (l *Ledger) CountGenerations() (int, error) {
	var n int
	if err := l.db.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
