package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes generated tests as markdown files into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer for dir. The directory is created on first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// UnitReportPath returns where the test for unit ordinal of sourcePath goes.
func (w *Writer) UnitReportPath(sourcePath string, ordinal int) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_Method%d_Test.md", ClassName(sourcePath), ordinal))
}

// ClassReportPath returns where the single-pass test for sourcePath goes.
func (w *Writer) ClassReportPath(sourcePath string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_Class_Test.md", ClassName(sourcePath)))
}

// WriteUnit writes the generated test for one unit and returns the file path.
func (w *Writer) WriteUnit(sourcePath string, ordinal int, generated string) (string, error) {
	title := fmt.Sprintf("# JUnit Test for Method %d in `%s`", ordinal, sourcePath)
	return w.write(w.UnitReportPath(sourcePath, ordinal), title, generated)
}

// WriteClass writes the single-pass test for a whole file and returns the file path.
func (w *Writer) WriteClass(sourcePath, generated string) (string, error) {
	title := fmt.Sprintf("# JUnit Test for `%s`", sourcePath)
	return w.write(w.ClassReportPath(sourcePath), title, generated)
}

func (w *Writer) write(path, title, generated string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n```java\n")
	sb.WriteString(ExtractCode(generated))
	sb.WriteString("\n```\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}
