package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database with the ledger schema.
// Cleanup is registered with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    ledger := storage.NewLedger(storage.NewTestDB(t))
//	    // ... test code ...
//	}
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Each new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	require.NoError(t, CreateSchema(db))
	return db
}
