package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Ledger:
// - CreateSchema is idempotent and records the schema version
// - StartRun returns a unique ID and Runs lists runs newest first
// - FinishRun stores counters and end time; unknown runs are an error
// - Lookup misses before Record and hits after; keyed by prompt hash and model
// - Record replaces an earlier output for the same key
// - Generations referencing an unknown run are rejected (foreign keys on)
// - Open creates the database file and its directory
// - HashPrompt is stable and content-sensitive

func TestCreateSchema_Idempotent(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	require.NoError(t, CreateSchema(db))

	version, err := GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
}

func TestLedger_Runs(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(NewTestDB(t))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	ledger.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := ledger.StartRun("/src", "llama3.2:latest")
	require.NoError(t, err)
	second, err := ledger.StartRun("/src", "llama3.2:latest")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	stats := RunStats{FilesTotal: 4, FilesSkipped: 1, FilesNoUnits: 1, UnitsGenerated: 5, CacheHits: 2}
	require.NoError(t, ledger.FinishRun(first, stats))

	runs, err := ledger.Runs(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second, runs[0].ID)
	assert.Nil(t, runs[0].FinishedAt)

	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, "/src", runs[1].RootDir)
	assert.Equal(t, stats, runs[1].Stats)
	require.NotNil(t, runs[1].FinishedAt)
	assert.True(t, runs[1].FinishedAt.After(runs[1].StartedAt))

	limited, err := ledger.Runs(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestLedger_FinishUnknownRun(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(NewTestDB(t))
	assert.Error(t, ledger.FinishRun("missing", RunStats{}))
}

func TestLedger_LookupAndRecord(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(NewTestDB(t))
	runID, err := ledger.StartRun("/src", "m1")
	require.NoError(t, err)

	hash := HashPrompt("prompt")
	_, ok, err := ledger.Lookup(hash, "m1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ledger.Record(Generation{
		PromptHash: hash, Model: "m1", RunID: runID, FilePath: "A.java", Ordinal: 2, Output: "first",
	}))

	out, ok, err := ledger.Lookup(hash, "m1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", out)

	// Different model is a different key.
	_, ok, err = ledger.Lookup(hash, "m2")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ledger.Record(Generation{
		PromptHash: hash, Model: "m1", RunID: runID, FilePath: "A.java", Ordinal: 2, Output: "second",
	}))
	out, _, err = ledger.Lookup(hash, "m1")
	require.NoError(t, err)
	assert.Equal(t, "second", out)

	n, err := ledger.CountGenerations()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLedger_RecordRequiresRun(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(NewTestDB(t))
	err := ledger.Record(Generation{PromptHash: "h", Model: "m", RunID: "nope", FilePath: "A.java", Output: "x"})
	assert.Error(t, err)
}

func TestOpen_CreatesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".testforge", "ledger.db")
	ledger, err := Open(path)
	require.NoError(t, err)

	runID, err := ledger.StartRun("/src", "m")
	require.NoError(t, err)
	require.NoError(t, ledger.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	runs, err := reopened.Runs(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}

func TestHashPrompt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashPrompt("a"), HashPrompt("a"))
	assert.NotEqual(t, HashPrompt("a"), HashPrompt("b"))
	assert.Len(t, HashPrompt("a"), 64)
}
