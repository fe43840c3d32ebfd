package storage

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is recorded in ledger_metadata on creation.
const SchemaVersion = "1"

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
    id              TEXT PRIMARY KEY,
    root_dir        TEXT NOT NULL,
    model           TEXT NOT NULL,
    started_at      TEXT NOT NULL,
    finished_at     TEXT,
    files_total     INTEGER NOT NULL DEFAULT 0,
    files_skipped   INTEGER NOT NULL DEFAULT 0,
    files_no_units  INTEGER NOT NULL DEFAULT 0,
    files_failed    INTEGER NOT NULL DEFAULT 0,
    units_generated INTEGER NOT NULL DEFAULT 0,
    cache_hits      INTEGER NOT NULL DEFAULT 0
)`

const createGenerationsTable = `
CREATE TABLE IF NOT EXISTS generations (
    prompt_hash TEXT NOT NULL,
    model       TEXT NOT NULL,
    run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    file_path   TEXT NOT NULL,
    ordinal     INTEGER NOT NULL,
    output      TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    PRIMARY KEY (prompt_hash, model)
)`

const createLedgerMetadataTable = `
CREATE TABLE IF NOT EXISTS ledger_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_generations_file ON generations(file_path)`,
	`CREATE INDEX IF NOT EXISTS idx_generations_run ON generations(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
}

// CreateSchema creates all ledger tables and indexes in one transaction.
// It is idempotent.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"runs", createRunsTable},
		{"generations", createGenerationsTable},
		{"ledger_metadata", createLedgerMetadataTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO ledger_metadata (key, value) VALUES ('schema_version', ?)`,
		SchemaVersion,
	); err != nil {
		return fmt.Errorf("failed to write schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetSchemaVersion returns the stored schema version, or "" if absent.
func GetSchemaVersion(db *sql.DB) (string, error) {
	var version string
	err := db.QueryRow(`SELECT value FROM ledger_metadata WHERE key = 'schema_version'`).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
