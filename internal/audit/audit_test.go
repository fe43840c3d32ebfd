package audit

import (
	"path/filepath"
	"testing"

	"github.com/mvp-joe/testforge/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for audit:
// - ParseSpans finds methods, constructors and methods of anonymous classes
// - ParseSpans marks bodiless declarations
// - Compare matches by name row and name, and sorts the rest into missed, nested and extra
// - AuditFile agrees with the grammar on a data holder
// - AuditFile flags the constructor as missed and the anonymous run() as nested
// - Raw brace counting shows up as an end-row mismatch
// - Truncated files report syntax errors

const fixtureDir = "../../testdata/code/java"

func TestParseSpans(t *testing.T) {
	t.Parallel()

	src := []byte(`public abstract class Shape {
    public Shape() {
    }

    public abstract double area();

    @Override
    public String toString() {
        return "shape";
    }
}
`)
	spans, syntaxErrors, err := ParseSpans(src)
	require.NoError(t, err)
	assert.False(t, syntaxErrors)
	require.Len(t, spans, 3)

	assert.Equal(t, Span{Name: "Shape", Kind: "constructor", Start: 1, NameLine: 1, End: 2, HasBody: true}, spans[0])
	assert.Equal(t, "area", spans[1].Name)
	assert.False(t, spans[1].HasBody)
	assert.Equal(t, Span{Name: "toString", Kind: "method", Start: 6, NameLine: 7, End: 9, HasBody: true}, spans[2])
}

func TestCompare(t *testing.T) {
	t.Parallel()

	units := []scan.Unit{
		{Name: "a", Start: 1, End: 3, Ordinal: 1},
		{Name: "b", Start: 5, End: 8, Ordinal: 2},
		{Name: "ghost", Start: 10, End: 11, Ordinal: 3},
	}
	spans := []Span{
		{Name: "a", Kind: "method", Start: 1, NameLine: 1, End: 3, HasBody: true},
		{Name: "b", Kind: "method", Start: 4, NameLine: 5, End: 9, HasBody: true},
		{Name: "inner", Kind: "method", Start: 6, NameLine: 6, End: 7, HasBody: true},
		{Name: "ctor", Kind: "constructor", Start: 13, NameLine: 13, End: 14, HasBody: true},
		{Name: "abstractOne", Kind: "method", Start: 16, NameLine: 16, End: 16},
	}

	r := Compare(units, spans)
	require.Len(t, r.Matched, 2)
	require.Len(t, r.Mismatched, 1)
	assert.Equal(t, "b", r.Mismatched[0].Unit.Name)
	require.Len(t, r.Extra, 1)
	assert.Equal(t, "ghost", r.Extra[0].Name)
	require.Len(t, r.Nested, 1)
	assert.Equal(t, "inner", r.Nested[0].Name)
	require.Len(t, r.Missed, 1)
	assert.Equal(t, "ctor", r.Missed[0].Name)
	assert.False(t, r.Clean())
}

func TestAuditFile_DataHolderIsClean(t *testing.T) {
	t.Parallel()

	r, err := AuditFile(filepath.Join(fixtureDir, "Person.java"), scan.Options{})
	require.NoError(t, err)

	assert.Len(t, r.Matched, 7)
	assert.True(t, r.Clean())
	assert.False(t, r.SyntaxErrors)
}

func TestAuditFile_Service(t *testing.T) {
	t.Parallel()

	path := filepath.Join(fixtureDir, "OrderService.java")
	r, err := AuditFile(path, scan.Options{})
	require.NoError(t, err)

	assert.Equal(t, path, r.Path)
	assert.Len(t, r.Matched, 5)
	assert.Empty(t, r.Mismatched)
	assert.Empty(t, r.Extra)

	require.Len(t, r.Missed, 1)
	assert.Equal(t, "constructor", r.Missed[0].Kind)
	assert.Equal(t, "OrderService", r.Missed[0].Name)

	require.Len(t, r.Nested, 1)
	assert.Equal(t, "run", r.Nested[0].Name)
}

func TestAuditFile_RawCountingMismatch(t *testing.T) {
	t.Parallel()

	r, err := AuditFile(filepath.Join(fixtureDir, "OrderService.java"), scan.Options{CountLiterals: true})
	require.NoError(t, err)

	require.Len(t, r.Mismatched, 1)
	m := r.Mismatched[0]
	assert.Equal(t, "add", m.Unit.Name)
	assert.Equal(t, 22, m.Unit.End)
	assert.Equal(t, 24, m.Span.End)
}

func TestAuditFile_Truncated(t *testing.T) {
	t.Parallel()

	r, err := AuditFile(filepath.Join(fixtureDir, "Truncated.java"), scan.Options{})
	require.NoError(t, err)
	assert.True(t, r.SyntaxErrors)
}

func TestAuditFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := AuditFile(filepath.Join(t.TempDir(), "Missing.java"), scan.Options{})
	assert.Error(t, err)
}
