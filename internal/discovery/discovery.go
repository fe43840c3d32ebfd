package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// stateDir is the project-local directory holding config and the ledger.
const stateDir = ".testforge"

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds source files under a root using include and ignore globs.
type FileDiscovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewFileDiscovery compiles the include and ignore patterns for rootDir.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{rootDir: rootDir}

	var err error
	if fd.includePatterns, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}
	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// DiscoverFiles walks the tree and returns matching files as absolute-or-root
// joined paths, sorted for a stable processing order.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if fd.IgnoresDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.shouldIgnore(relPath) {
			return nil
		}
		if fd.Matches(relPath) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether a slash-separated path relative to the root is an
// included, non-ignored file.
func (fd *FileDiscovery) Matches(relPath string) bool {
	if fd.shouldIgnore(relPath) {
		return false
	}
	return matchesAnyPattern(relPath, fd.includePatterns)
}

// IgnoresDir reports whether a directory relative to the root is excluded
// from walking and watching.
func (fd *FileDiscovery) IgnoresDir(relPath string) bool {
	return relPath != "." && fd.shouldIgnore(relPath)
}

// RootDir returns the directory discovery walks.
func (fd *FileDiscovery) RootDir() string {
	return fd.rootDir
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if strings.HasPrefix(relPath, stateDir+"/") || relPath == stateDir {
		return true
	}

	if matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// "target" should match pattern "target/**"
	return matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// "**/" also matches zero directories: "**/*.java" matches "A.java" and
	// "**/target/**" matches "target/classes/A.java".
	for _, cp := range patterns {
		if !strings.HasPrefix(cp.pattern, "**/") {
			continue
		}
		simplified := strings.TrimPrefix(cp.pattern, "**/")
		if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
			return true
		}
	}

	return false
}
