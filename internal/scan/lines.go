package scan

import (
	"fmt"
	"os"
	"strings"
)

// ReadLines reads a file and returns its lines in order.
func ReadLines(path string) ([]SourceLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text on line breaks. CRLF endings are normalised and a
// trailing newline does not produce an extra empty line.
func SplitLines(text string) []SourceLine {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	raw := strings.Split(text, "\n")
	lines := make([]SourceLine, len(raw))
	for i, t := range raw {
		lines[i] = SourceLine{Index: i, Text: t}
	}
	return lines
}
