package pipeline

import (
	"time"

	"github.com/mvp-joe/testforge/internal/classify"
)

// Status is the result of processing one file.
type Status int

const (
	// StatusGenerated means at least one report was written.
	StatusGenerated Status = iota
	// StatusSkipped means the file was a large data holder and went to the skip log.
	StatusSkipped
	// StatusNoUnits means no method units were found.
	StatusNoUnits
	// StatusFailed means reading, generation or writing failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusGenerated:
		return "generated"
	case StatusSkipped:
		return "skipped"
	case StatusNoUnits:
		return "no-units"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileOutcome records what happened to one source file.
type FileOutcome struct {
	Path           string
	Status         Status
	Classification classify.FileClassification
	Reports        []string // report files written, also on partial failure
	CacheHits      int
	PartialUnits   int
	Err            error
}

// Stats summarises a run.
type Stats struct {
	RunID          string
	FilesTotal     int
	FilesGenerated int
	FilesSkipped   int
	FilesNoUnits   int
	FilesFailed    int
	UnitsGenerated int
	CacheHits      int
	Duration       time.Duration
	Outcomes       []FileOutcome
}

func (s *Stats) add(o FileOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.CacheHits += o.CacheHits
	s.UnitsGenerated += len(o.Reports)

	switch o.Status {
	case StatusGenerated:
		s.FilesGenerated++
	case StatusSkipped:
		s.FilesSkipped++
	case StatusNoUnits:
		s.FilesNoUnits++
	case StatusFailed:
		s.FilesFailed++
	}
}
