package pipeline

import (
	"github.com/mvp-joe/testforge/internal/classify"
	"github.com/mvp-joe/testforge/internal/report"
	"github.com/mvp-joe/testforge/internal/scan"
)

// FileScan is the scan and classification of one file, before any generation.
type FileScan struct {
	Path           string
	ClassName      string
	Lines          []scan.SourceLine
	Result         scan.Result
	Trivial        []bool // parallel to Result.Units
	Classification classify.FileClassification
	Targets        []scan.Unit
}

// TrivialCount returns how many units were classified trivial.
func (f *FileScan) TrivialCount() int {
	n := 0
	for _, t := range f.Trivial {
		if t {
			n++
		}
	}
	return n
}

// PartialUnits returns the units cut off by end of file.
func (f *FileScan) PartialUnits() []scan.Unit {
	var partial []scan.Unit
	for _, u := range f.Result.Units {
		if u.Partial {
			partial = append(partial, u)
		}
	}
	return partial
}

// Text returns the whole file as newline-joined text.
func (f *FileScan) Text() string {
	return scan.JoinLines(f.Lines)
}

// ScanFile reads path, extracts its units and classifies the file.
func ScanFile(path string, opts scan.Options, classifier *classify.Classifier) (*FileScan, error) {
	lines, err := scan.ReadLines(path)
	if err != nil {
		return nil, err
	}
	return ScanLines(path, lines, opts, classifier), nil
}

// ScanLines is ScanFile for lines already in memory.
func ScanLines(path string, lines []scan.SourceLine, opts scan.Options, classifier *classify.Classifier) *FileScan {
	result := scan.Extract(lines, opts)
	fc, trivial := classifier.ClassifyUnits(result.Units)

	return &FileScan{
		Path:           path,
		ClassName:      report.ClassName(path),
		Lines:          lines,
		Result:         result,
		Trivial:        trivial,
		Classification: fc,
		Targets:        classify.SelectUnits(result.Units, trivial, fc),
	}
}
