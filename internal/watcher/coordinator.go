package watcher

import (
	"context"
	"log"
	"sync"
)

// WatchCoordinator routes debounced file changes from a FileWatcher to a
// ChangeHandler, one batch at a time.
type WatchCoordinator struct {
	files   FileWatcher
	handler ChangeHandler
	mu      sync.Mutex // serialises handler calls
}

// NewWatchCoordinator creates a new watch coordinator.
func NewWatchCoordinator(files FileWatcher, handler ChangeHandler) *WatchCoordinator {
	return &WatchCoordinator{
		files:   files,
		handler: handler,
	}
}

// Start begins watching and routing changes to the handler. If initial is
// non-empty it is handled first with the watcher paused, so edits made
// meanwhile are delivered right after. Blocks until ctx is cancelled.
func (c *WatchCoordinator) Start(ctx context.Context, initial []string) error {
	if err := c.files.Start(ctx, func(files []string) {
		c.handleFileChange(ctx, files)
	}); err != nil {
		c.cleanup()
		return err
	}

	if len(initial) > 0 {
		c.files.Pause()
		c.handleFileChange(ctx, initial)
		c.files.Resume()
	}

	<-ctx.Done()
	c.cleanup()
	return ctx.Err()
}

func (c *WatchCoordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}

// handleFileChange runs the handler for one batch of changed files.
func (c *WatchCoordinator) handleFileChange(ctx context.Context, files []string) {
	if len(files) == 0 || ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	log.Printf("Processing %d changed file(s)...", len(files))
	if err := c.handler(ctx, files); err != nil {
		log.Printf("Error: generation failed: %v", err)
		return
	}
	log.Printf("✓ Processed %d file(s)", len(files))
}
