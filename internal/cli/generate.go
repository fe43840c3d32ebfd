package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mvp-joe/testforge/internal/backend"
	"github.com/mvp-joe/testforge/internal/pipeline"
	"github.com/mvp-joe/testforge/internal/report"
	"github.com/mvp-joe/testforge/internal/storage"
	"github.com/mvp-joe/testforge/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	quietFlag   bool
	watchFlag   bool
	forceFlag   bool
	streamFlag  bool
	workersFlag int
)

// newGenerator is replaced in tests.
var newGenerator = backend.NewGenerator

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Generate JUnit tests for the Java files in a directory",
	Long: `Generate scans every Java file, classifies it and asks the configured
model for tests:

  - small data holders get one test class for the whole file
  - other files get one test per non-trivial method
  - large data holders are listed in the skip log instead

Reports are written to the output directory (default tests_markdown/).
Answers are stored in .testforge/ledger.db and reused when the same method
is seen again with the same model; use --force to regenerate.

Examples:
  # Generate for the current directory
  testforge generate

  # Four files at a time, no progress bar
  testforge generate ./service --workers 4 --quiet

  # Keep running and regenerate changed files
  testforge generate --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
	generateCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Ignore stored answers and call the model again")
	generateCmd.Flags().BoolVar(&streamFlag, "stream", false, "Print model output as it arrives (forces one worker)")
	generateCmd.Flags().IntVarP(&workersFlag, "workers", "n", 0, "Files processed in parallel (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	restoreLog := setQuietLogging(quietFlag)
	defer restoreLog()

	ctx, cancel := signalContext(func() {
		fmt.Println("\nInterrupted! Finishing files in progress...")
	})
	defer cancel()

	p, err := loadProject(args)
	if err != nil {
		return err
	}
	cfg := p.cfg

	if workersFlag > 0 {
		cfg.Scan.Workers = workersFlag
	}
	if streamFlag {
		cfg.Scan.Workers = 1
	}

	gen, err := newGenerator(cfg.GeneratorConfig())
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	opts := []pipeline.RunnerOption{
		pipeline.WithProgress(NewCLIProgressReporter(quietFlag)),
	}
	if streamFlag {
		out := cmd.OutOrStdout()
		opts = append(opts, pipeline.WithChunkFunc(func(chunk string) {
			fmt.Fprint(out, chunk)
		}))
	}

	if cfg.Storage.Enabled {
		ledger, err := storage.Open(p.path(cfg.Storage.Path))
		if err != nil {
			return err
		}
		defer ledger.Close()
		opts = append(opts, pipeline.WithLedger(ledger))
	}

	runner := pipeline.NewRunner(pipeline.Config{
		Workers:    cfg.Scan.Workers,
		Force:      forceFlag,
		Scan:       cfg.ScanOptions(),
		Thresholds: cfg.Thresholds(),
		Verbose:    verbose,
	}, gen,
		report.NewWriter(p.path(cfg.Output.Dir)),
		report.NewSkipLog(p.path(cfg.Output.SkipLog)),
		opts...)

	files, err := p.files.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}

	if !quietFlag {
		log.Printf("Generating with %s (%s) for %d files", gen.Model(), cfg.GeneratorConfig().ServerURL(), len(files))
	}

	if watchFlag {
		return watchAndGenerate(ctx, p, runner, files)
	}

	stats, err := runner.Run(ctx, p.rootDir, files)
	if stats != nil && quietFlag {
		reportFailures(stats)
	}
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}

// watchAndGenerate runs files once, then regenerates changed files until ctx
// is cancelled.
func watchAndGenerate(ctx context.Context, p *project, runner *pipeline.Runner, files []string) error {
	fw, err := watcher.NewFileWatcher(p.rootDir, p.files)
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	coord := watcher.NewWatchCoordinator(fw, func(ctx context.Context, changed []string) error {
		stats, err := runner.Run(ctx, p.rootDir, changed)
		if stats != nil && quietFlag {
			reportFailures(stats)
		}
		return err
	})

	if !quietFlag {
		log.Println("Starting watch mode...")
	}
	if err := coord.Start(ctx, files); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}
	if !quietFlag {
		log.Println("Watch mode stopped")
	}
	return nil
}

// reportFailures prints failed files to stderr; used when --quiet hides the summary.
func reportFailures(stats *pipeline.Stats) {
	for _, o := range stats.Outcomes {
		if o.Status == pipeline.StatusFailed {
			fmt.Fprintf(os.Stderr, "%s: %v\n", o.Path, o.Err)
		}
	}
}
