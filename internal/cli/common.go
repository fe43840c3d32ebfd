package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mvp-joe/testforge/internal/config"
	"github.com/mvp-joe/testforge/internal/discovery"
)

// project is a loaded project root with its configuration.
type project struct {
	rootDir string
	cfg     *config.Config
	files   *discovery.FileDiscovery
}

// loadProject resolves the optional directory argument (default: working
// directory), loads .testforge/config.yml from it and prepares discovery.
func loadProject(args []string) (*project, error) {
	rootDir := "."
	if len(args) > 0 {
		rootDir = args[0]
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}
	if info, err := os.Stat(rootDir); err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", rootDir, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootDir)
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	fd, err := discovery.NewFileDiscovery(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare file discovery: %w", err)
	}

	return &project{rootDir: rootDir, cfg: cfg, files: fd}, nil
}

// path resolves a configured path against the project root.
func (p *project) path(configured string) string {
	return config.ResolvePath(p.rootDir, configured)
}

// relative returns path relative to the project root for display.
func (p *project) relative(path string) string {
	if rel, err := filepath.Rel(p.rootDir, path); err == nil {
		return rel
	}
	return path
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext(onSignal func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			if onSignal != nil {
				onSignal()
			}
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
