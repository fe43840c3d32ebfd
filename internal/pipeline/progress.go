package pipeline

// ProgressReporter receives callbacks while a run progresses.
// OnFileProcessed is called from worker goroutines and must be safe for
// concurrent use.
type ProgressReporter interface {
	// OnFileProcessingStart is called once before any file is processed.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file finishes.
	OnFileProcessed(outcome FileOutcome)

	// OnComplete is called when the run finishes, also after cancellation.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileProcessed(outcome FileOutcome)  {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)              {}
