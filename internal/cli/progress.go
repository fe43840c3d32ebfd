package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mvp-joe/testforge/internal/pipeline"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements pipeline.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	quiet   bool
	out     io.Writer
	mu      sync.Mutex
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to stdout.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return newProgressReporter(quiet, os.Stdout)
}

func newProgressReporter(quiet bool, out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet, out: out}
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Generating tests"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(outcome pipeline.FileOutcome) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *pipeline.Stats) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	c.mu.Unlock()

	fmt.Fprintln(c.out)
	printRunSummary(c.out, stats)
}

// printRunSummary writes the totals of a generate run.
func printRunSummary(w io.Writer, stats *pipeline.Stats) {
	fmt.Fprintf(w, "✓ Generation complete: %s tests from %s files in %.1fs\n",
		formatNumber(stats.UnitsGenerated), formatNumber(stats.FilesTotal), stats.Duration.Seconds())
	fmt.Fprintf(w, "  Generated:  %s files\n", formatNumber(stats.FilesGenerated))
	fmt.Fprintf(w, "  Skipped:    %s files\n", formatNumber(stats.FilesSkipped))
	fmt.Fprintf(w, "  No methods: %s files\n", formatNumber(stats.FilesNoUnits))
	if stats.CacheHits > 0 {
		fmt.Fprintf(w, "  From cache: %s tests\n", formatNumber(stats.CacheHits))
	}
	if stats.FilesFailed > 0 {
		fmt.Fprintf(w, "  Failed:     %s files\n", formatNumber(stats.FilesFailed))
		for _, o := range stats.Outcomes {
			if o.Status == pipeline.StatusFailed {
				fmt.Fprintf(w, "    - %s: %v\n", o.Path, o.Err)
			}
		}
	}
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
