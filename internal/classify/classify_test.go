package classify

import (
	"path/filepath"
	"testing"

	"github.com/mvp-joe/testforge/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for classify:
// - IsTrivial accepts two-line getters, three-line getters/setters and boolean "is" accessors
// - IsTrivial rejects single-line units, units with branches, long units and non-accessor names
// - IsTrivial is deterministic for identical input
// - Classify maps (100,85) to Skip, (10,9) to SinglePass, (10,3) to PerUnit
// - Classify treats the thresholds as inclusive ratio / exclusive count
// - Classify returns KindNone for zero units
// - Custom thresholds are honoured
// - ClassifyUnits and SelectUnits agree with the fixtures

func TestIsTrivial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"two line getter", "public int getX() {\nreturn x; }", true},
		{"three line getter", "    public String getName() {\n        return name;\n    }", true},
		{"setter with this", "public void setName(String name) {\n    this.name = name;\n}", true},
		{"setter without this", "public void setCount(int c) {\n    count = c;\n}", false},
		{"setter with closing brace on body line", "public void setCount(int c) {\n    count = c; }", false},
		{"assignment ending in semicolon", "public void setCount(int c)\n{\n    count = c;", true},
		{"boolean accessor", "public boolean isActive() {\n    return active;\n}", true},
		{"blank lines ignored", "public int getX() {\n\n\n    return x;\n\n}", true},
		{"single line", "public int getX() { return x; }", false},
		{"if branch before return", "public int getX() {\n    if (x < 0) return 0;\n    return x;\n}", false},
		{"branching getter over limit", "public int getX() {\n    if (x < 0) {\n        return 0;\n    }\n    return x;\n}", false},
		{"non accessor name", "public int compute() {\n    return a + b;\n}", false},
		{"computation in getter", "public int getTotal() {\n    total();\n}", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsTrivial(tt.text))
			assert.Equal(t, IsTrivial(tt.text), IsTrivial(tt.text))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		name    string
		total   int
		trivial int
		want    Kind
	}{
		{"large data holder", 100, 85, KindSkip},
		{"small data holder", 10, 9, KindSinglePass},
		{"mixed", 10, 3, KindPerUnit},
		{"ratio exactly at threshold", 10, 8, KindSinglePass},
		{"count exactly at limit", 60, 60, KindSinglePass},
		{"count just over limit", 61, 61, KindSkip},
		{"large but substantive", 100, 79, KindPerUnit},
		{"nothing trivial", 5, 0, KindPerUnit},
		{"no units", 0, 0, KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fc := c.Classify(tt.total, tt.trivial)
			assert.Equal(t, tt.want, fc.Kind)
			assert.Equal(t, tt.total, fc.Total)
			assert.Equal(t, tt.trivial, fc.Trivial)
		})
	}

	assert.Equal(t, 0.0, c.Classify(0, 0).Ratio)
	assert.InDelta(t, 0.85, c.Classify(100, 85).Ratio, 1e-9)
}

func TestClassify_CustomThresholds(t *testing.T) {
	t.Parallel()

	c := NewClassifier(Thresholds{TrivialRatio: 0.5, SkipUnitCount: 4})
	assert.Equal(t, KindSkip, c.Classify(5, 3).Kind)
	assert.Equal(t, KindSinglePass, c.Classify(4, 2).Kind)
	assert.Equal(t, KindPerUnit, c.Classify(5, 2).Kind)
	assert.Equal(t, Thresholds{TrivialRatio: 0.5, SkipUnitCount: 4}, c.Thresholds())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "skip", KindSkip.String())
	assert.Equal(t, "single-pass", KindSinglePass.String())
	assert.Equal(t, "per-unit", KindPerUnit.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func classifyFixture(t *testing.T, name string) ([]scan.Unit, FileClassification, []bool) {
	t.Helper()

	lines, err := scan.ReadLines(filepath.Join("../../testdata/code/java", name))
	require.NoError(t, err)
	units := scan.Extract(lines, scan.Options{}).Units
	fc, trivial := NewClassifier(DefaultThresholds()).ClassifyUnits(units)
	return units, fc, trivial
}

func TestClassifyUnits_DataHolder(t *testing.T) {
	t.Parallel()

	units, fc, trivial := classifyFixture(t, "Person.java")
	require.Len(t, units, 7)
	assert.Equal(t, []bool{true, true, true, true, true, true, false}, trivial)
	assert.Equal(t, KindSinglePass, fc.Kind)
	assert.Equal(t, 6, fc.Trivial)

	assert.Len(t, SelectUnits(units, trivial, fc), 7)
}

func TestClassifyUnits_Service(t *testing.T) {
	t.Parallel()

	units, fc, trivial := classifyFixture(t, "OrderService.java")
	require.Len(t, units, 5)
	assert.Equal(t, KindPerUnit, fc.Kind)
	assert.Equal(t, 1, fc.Trivial)

	selected := SelectUnits(units, trivial, fc)
	var ordinals []int
	for _, u := range selected {
		ordinals = append(ordinals, u.Ordinal)
	}
	assert.Equal(t, []int{2, 3, 4, 5}, ordinals)
}

func TestSelectUnits_NothingForSkipAndNone(t *testing.T) {
	t.Parallel()

	units := []scan.Unit{{Ordinal: 1}, {Ordinal: 2}}
	assert.Nil(t, SelectUnits(units, []bool{true, true}, FileClassification{Kind: KindSkip}))
	assert.Nil(t, SelectUnits(nil, nil, FileClassification{Kind: KindNone}))
}
