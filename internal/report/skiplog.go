package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SkipLog appends one line per skipped file. Appends are serialised so
// concurrent file workers never interleave lines.
type SkipLog struct {
	path string
	mu   sync.Mutex
}

// NewSkipLog returns a skip log writing to path. The file is created on the
// first append.
func NewSkipLog(path string) *SkipLog {
	return &SkipLog{path: path}
}

// Path returns the log file location.
func (s *SkipLog) Path() string {
	return s.path
}

// Append records that filePath was skipped with trivial of total units trivial.
func (s *SkipLog) Append(filePath string, trivial, total int) error {
	line := FormatSkipLine(filePath, trivial, total) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create skip log directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open skip log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to skip log: %w", err)
	}
	return f.Close()
}

// FormatSkipLine renders the skip log entry:
//
//	Person - src/model/Person.java (skipped 70/80 trivial methods)
func FormatSkipLine(filePath string, trivial, total int) string {
	return fmt.Sprintf("%s - %s (skipped %d/%d trivial methods)", ClassName(filePath), filePath, trivial, total)
}

// ClassName returns the file's base name without extension.
func ClassName(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
