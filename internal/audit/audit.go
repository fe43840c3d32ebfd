// Package audit cross-checks the line-based unit extractor against a real
// Java grammar. It reports what the heuristic found, missed or cut short; it
// never feeds back into extraction.
package audit

import (
	"fmt"
	"os"

	"github.com/mvp-joe/testforge/internal/scan"
)

// Match pairs an extracted unit with the declaration it corresponds to.
type Match struct {
	Unit scan.Unit
	Span Span
}

// EndsAgree reports whether the unit and the declaration end on the same row.
func (m Match) EndsAgree() bool {
	return m.Unit.End == m.Span.End
}

// Report is the comparison for one file.
type Report struct {
	Path string

	// Matched units start on the row naming a declaration of the same name.
	Matched []Match
	// Mismatched is the subset of Matched whose end rows differ.
	Mismatched []Match
	// Missed declarations have a body but no unit, e.g. constructors or
	// signatures whose brace is on the next line.
	Missed []Span
	// Nested declarations lie inside a matched unit and were absorbed by it.
	Nested []Span
	// Extra units have no declaration behind them.
	Extra []scan.Unit

	SyntaxErrors bool
}

// Clean reports whether the heuristic and the grammar fully agree.
func (r *Report) Clean() bool {
	return len(r.Mismatched) == 0 && len(r.Missed) == 0 && len(r.Extra) == 0
}

// Compare matches units to spans. Declarations without a body are ignored
// since the extractor cannot see them.
func Compare(units []scan.Unit, spans []Span) *Report {
	r := &Report{}

	byLine := make(map[int][]int, len(spans))
	for i, s := range spans {
		byLine[s.NameLine] = append(byLine[s.NameLine], i)
	}

	used := make([]bool, len(spans))
	for _, u := range units {
		matched := false
		for _, i := range byLine[u.Start] {
			if used[i] || spans[i].Name != u.Name {
				continue
			}
			used[i] = true
			m := Match{Unit: u, Span: spans[i]}
			r.Matched = append(r.Matched, m)
			if !m.EndsAgree() {
				r.Mismatched = append(r.Mismatched, m)
			}
			matched = true
			break
		}
		if !matched {
			r.Extra = append(r.Extra, u)
		}
	}

	for i, s := range spans {
		if used[i] || !s.HasBody {
			continue
		}
		if insideAny(s, r.Matched) {
			r.Nested = append(r.Nested, s)
		} else {
			r.Missed = append(r.Missed, s)
		}
	}

	return r
}

func insideAny(s Span, matches []Match) bool {
	for _, m := range matches {
		if s.Start > m.Unit.Start && s.End <= m.Unit.End {
			return true
		}
	}
	return false
}

// AuditFile extracts units from path and compares them with the grammar.
func AuditFile(path string, opts scan.Options) (*Report, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	spans, syntaxErrors, err := ParseSpans(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result := scan.ExtractText(string(source), opts)
	r := Compare(result.Units, spans)
	r.Path = path
	r.SyntaxErrors = syntaxErrors
	return r, nil
}
