package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for report:
// - FormatSkipLine renders "<Class> - <path> (skipped C/T trivial methods)"
// - SkipLog appends one line per call and creates missing directories
// - SkipLog appends are not interleaved under concurrent writers
// - ExtractCode pulls fenced blocks out of a response and falls back to raw text
// - Writer names unit and class reports after the source class and writes a fenced body

func TestFormatSkipLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"Person - src/model/Person.java (skipped 70/80 trivial methods)",
		FormatSkipLine("src/model/Person.java", 70, 80))
	assert.Equal(t, "Person", ClassName("/abs/Person.java"))
	assert.Equal(t, "Makefile", ClassName("Makefile"))
}

func TestSkipLog_Append(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "skipped.log")
	log := NewSkipLog(path)
	assert.Equal(t, path, log.Path())

	require.NoError(t, log.Append("a/Big.java", 70, 80))
	require.NoError(t, log.Append("b/Huge.java", 99, 100))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Big - a/Big.java (skipped 70/80 trivial methods)\n"+
			"Huge - b/Huge.java (skipped 99/100 trivial methods)\n",
		string(data))
}

func TestSkipLog_Concurrent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "skipped.log")
	log := NewSkipLog(path)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, log.Append(fmt.Sprintf("pkg/File%d.java", i), 61, 70))
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 25)
	for _, l := range lines {
		assert.Regexp(t, `^File\d+ - pkg/File\d+\.java \(skipped 61/70 trivial methods\)$`, l)
	}
}

func TestExtractCode(t *testing.T) {
	t.Parallel()

	response := "Here is your test:\n\n```java\nimport org.junit.jupiter.api.Test;\n\nclass PointTest {}\n```\n\nIt covers the getter."
	assert.Equal(t, "import org.junit.jupiter.api.Test;\n\nclass PointTest {}", ExtractCode(response))

	two := "```java\nclass A {}\n```\ntext\n```\nclass B {}\n```"
	assert.Equal(t, "class A {}\n\nclass B {}", ExtractCode(two))

	assert.Equal(t, "class Raw {}", ExtractCode("\n  class Raw {}\n"))
}

func TestWriter(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "tests_markdown")
	w := NewWriter(dir)
	assert.Equal(t, dir, w.Dir())

	path, err := w.WriteUnit("src/Point.java", 2, "```java\nclass PointTest {}\n```")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Point_Method2_Test.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# JUnit Test for Method 2 in `src/Point.java`\n\n```java\nclass PointTest {}\n```\n", string(data))

	path, err = w.WriteClass("src/Person.java", "class PersonTest {}")
	require.NoError(t, err)
	assert.Equal(t, w.ClassReportPath("src/Person.java"), path)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# JUnit Test for `src/Person.java`\n\n"))
	assert.Contains(t, string(data), "class PersonTest {}")
}
