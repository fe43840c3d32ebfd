package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/mvp-joe/testforge/internal/backend"
	"github.com/mvp-joe/testforge/internal/classify"
	"github.com/mvp-joe/testforge/internal/report"
	"github.com/mvp-joe/testforge/internal/scan"
	"github.com/mvp-joe/testforge/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Config controls a Runner.
type Config struct {
	// Workers is the number of files processed in parallel (minimum 1).
	Workers int

	// Force bypasses the ledger cache and always calls the backend.
	Force bool

	Scan       scan.Options
	Thresholds classify.Thresholds

	// Verbose logs per-file and per-unit decisions.
	Verbose bool
}

// Runner drives scan, classification, generation and report writing over a
// set of files.
type Runner struct {
	cfg        Config
	classifier *classify.Classifier
	gen        backend.Generator
	writer     *report.Writer
	skipLog    *report.SkipLog
	ledger     *storage.Ledger
	progress   ProgressReporter
	onChunk    backend.ChunkFunc
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLedger enables the generation ledger as a response cache and run log.
func WithLedger(ledger *storage.Ledger) RunnerOption {
	return func(r *Runner) {
		r.ledger = ledger
	}
}

// WithProgress configures progress reporting.
func WithProgress(progress ProgressReporter) RunnerOption {
	return func(r *Runner) {
		r.progress = progress
	}
}

// WithChunkFunc receives streamed backend output.
func WithChunkFunc(fn backend.ChunkFunc) RunnerOption {
	return func(r *Runner) {
		r.onChunk = fn
	}
}

// NewRunner creates a runner that generates with gen and writes through
// writer and skipLog.
func NewRunner(cfg Config, gen backend.Generator, writer *report.Writer, skipLog *report.SkipLog, opts ...RunnerOption) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	r := &Runner{
		cfg:        cfg,
		classifier: classify.NewClassifier(cfg.Thresholds),
		gen:        gen,
		writer:     writer,
		skipLog:    skipLog,
		progress:   &NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes files under rootDir. Per-file failures are recorded on the
// outcomes and never stop other files. Cancelling ctx stops new files from
// starting; files already in progress finish. The returned stats are valid
// even when the error is non-nil.
func (r *Runner) Run(ctx context.Context, rootDir string, files []string) (*Stats, error) {
	start := time.Now()
	stats := &Stats{FilesTotal: len(files)}

	if r.ledger != nil {
		runID, err := r.ledger.StartRun(rootDir, r.gen.Model())
		if err != nil {
			return nil, err
		}
		stats.RunID = runID
	}

	r.progress.OnFileProcessingStart(len(files))

	outcomes := make([]*FileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// In-flight files run to completion.
			outcome := r.processFile(context.WithoutCancel(gctx), rootDir, stats.RunID, path)
			outcomes[i] = &outcome
			r.progress.OnFileProcessed(outcome)
			return nil
		})
	}

	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}

	for _, o := range outcomes {
		if o != nil {
			stats.add(*o)
		}
	}
	stats.Duration = time.Since(start)

	if r.ledger != nil {
		if err := r.ledger.FinishRun(stats.RunID, storage.RunStats{
			FilesTotal:     stats.FilesTotal,
			FilesSkipped:   stats.FilesSkipped,
			FilesNoUnits:   stats.FilesNoUnits,
			FilesFailed:    stats.FilesFailed,
			UnitsGenerated: stats.UnitsGenerated,
			CacheHits:      stats.CacheHits,
		}); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	r.progress.OnComplete(stats)
	return stats, runErr
}

func (r *Runner) processFile(ctx context.Context, rootDir, runID, path string) FileOutcome {
	display := displayPath(rootDir, path)
	outcome := FileOutcome{Path: display}

	fs, err := ScanFile(path, r.cfg.Scan, r.classifier)
	if err != nil {
		log.Printf("Warning: %v", err)
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	fs.Path = display
	outcome.Classification = fs.Classification

	for _, u := range fs.PartialUnits() {
		outcome.PartialUnits++
		log.Printf("Warning: %s: method %s starting at line %d is not closed before end of file", display, u.Name, u.Start+1)
	}

	fc := fs.Classification
	switch fc.Kind {
	case classify.KindNone:
		if r.cfg.Verbose {
			log.Printf("No methods detected in %s", display)
		}
		outcome.Status = StatusNoUnits

	case classify.KindSkip:
		if err := r.skipLog.Append(display, fc.Trivial, fc.Total); err != nil {
			log.Printf("Warning: %v", err)
			outcome.Status = StatusFailed
			outcome.Err = err
			return outcome
		}
		if r.cfg.Verbose {
			log.Printf("Skipped %s (%d/%d trivial methods)", display, fc.Trivial, fc.Total)
		}
		outcome.Status = StatusSkipped

	case classify.KindSinglePass:
		prompt := backend.ClassPrompt(fs.Text(), fs.ClassName)
		generated, hit, err := r.generate(ctx, runID, display, 0, prompt)
		if err == nil {
			var written string
			if written, err = r.writer.WriteClass(display, generated); err == nil {
				outcome.Reports = append(outcome.Reports, written)
			}
		}
		if hit {
			outcome.CacheHits++
		}
		r.finish(&outcome, err)

	case classify.KindPerUnit:
		var errs []error
		for _, u := range fs.Targets {
			if r.cfg.Verbose {
				log.Printf("Generating test for method %d (%s) in %s", u.Ordinal, u.Name, display)
			}
			prompt := backend.UnitPrompt(u.Text, fs.ClassName)
			generated, hit, err := r.generate(ctx, runID, display, u.Ordinal, prompt)
			if hit {
				outcome.CacheHits++
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("method %d: %w", u.Ordinal, err))
				continue
			}
			written, err := r.writer.WriteUnit(display, u.Ordinal, generated)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			outcome.Reports = append(outcome.Reports, written)
		}
		r.finish(&outcome, errors.Join(errs...))
	}

	return outcome
}

func (r *Runner) finish(outcome *FileOutcome, err error) {
	if err != nil {
		log.Printf("Warning: failed to generate tests for %s: %v", outcome.Path, err)
		outcome.Status = StatusFailed
		outcome.Err = err
		return
	}
	outcome.Status = StatusGenerated
}

// generate returns the backend answer for prompt, served from the ledger when
// a previous run already answered the same prompt with the same model.
func (r *Runner) generate(ctx context.Context, runID, path string, ordinal int, prompt string) (string, bool, error) {
	model := r.gen.Model()
	hash := storage.HashPrompt(prompt)

	if r.ledger != nil && !r.cfg.Force {
		out, ok, err := r.ledger.Lookup(hash, model)
		if err != nil {
			log.Printf("Warning: %v", err)
		} else if ok {
			return out, true, nil
		}
	}

	out, err := r.gen.Generate(ctx, prompt, r.onChunk)
	if err != nil {
		return "", false, err
	}

	if r.ledger != nil {
		if err := r.ledger.Record(storage.Generation{
			PromptHash: hash,
			Model:      model,
			RunID:      runID,
			FilePath:   path,
			Ordinal:    ordinal,
			Output:     out,
		}); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	return out, false, nil
}

// displayPath returns path relative to rootDir when it lies inside it.
func displayPath(rootDir, path string) string {
	if rootDir == "" {
		return path
	}
	rel, err := filepath.Rel(rootDir, path)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return path
	}
	return rel
}
