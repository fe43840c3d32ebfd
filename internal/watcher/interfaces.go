package watcher

import "context"

// FileWatcher monitors source files for changes with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching the source tree, calling callback with debounced file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
	Resume()
}

// Matcher decides which paths, relative to the watched root and
// slash-separated, are of interest. *discovery.FileDiscovery satisfies it.
type Matcher interface {
	// Matches reports whether a file should trigger generation.
	Matches(relPath string) bool

	// IgnoresDir reports whether a directory should not be watched.
	IgnoresDir(relPath string) bool
}

// ChangeHandler processes a batch of changed files.
type ChangeHandler func(ctx context.Context, files []string) error
