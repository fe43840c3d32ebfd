package config

import (
	"path/filepath"
	"time"

	"github.com/mvp-joe/testforge/internal/backend"
	"github.com/mvp-joe/testforge/internal/classify"
	"github.com/mvp-joe/testforge/internal/scan"
)

// Config represents the complete testforge configuration.
// It can be loaded from .testforge/config.yml with environment variable overrides.
type Config struct {
	Backend  BackendConfig  `yaml:"backend" mapstructure:"backend"`
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Scan     ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
}

// BackendConfig configures the text-generation backend.
type BackendConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`                       // "ollama"
	Host              string  `yaml:"host" mapstructure:"host"`                               // backend host name
	Port              int     `yaml:"port" mapstructure:"port"`                               // backend port
	Model             string  `yaml:"model" mapstructure:"model"`                             // e.g., "llama3.2:latest"
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`         // per request, 0 = none
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 = unlimited
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// ScanConfig controls unit extraction and parallelism.
type ScanConfig struct {
	Workers       int  `yaml:"workers" mapstructure:"workers"`               // files processed in parallel
	CountLiterals bool `yaml:"count_literals" mapstructure:"count_literals"` // count braces inside strings and comments
}

// ClassifyConfig holds the file classification thresholds.
type ClassifyConfig struct {
	TrivialRatio  float64 `yaml:"trivial_ratio" mapstructure:"trivial_ratio"`
	SkipUnitCount int     `yaml:"skip_unit_count" mapstructure:"skip_unit_count"`
}

// OutputConfig locates generated reports and the skip log.
// Relative paths are resolved against the project root.
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	SkipLog string `yaml:"skip_log" mapstructure:"skip_log"`
}

// StorageConfig controls the generation ledger.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			Provider:       "ollama",
			Host:           "localhost",
			Port:           11434,
			Model:          "llama3.2:latest",
			TimeoutSeconds: 300,
		},
		Paths: PathsConfig{
			Include: []string{"**/*.java"},
			Ignore: []string{
				"**/target/**",
				"**/build/**",
				"**/.git/**",
				"**/.gradle/**",
				"**/node_modules/**",
			},
		},
		Scan: ScanConfig{
			Workers: 1,
		},
		Classify: ClassifyConfig{
			TrivialRatio:  classify.DefaultTrivialRatio,
			SkipUnitCount: classify.DefaultSkipUnitCount,
		},
		Output: OutputConfig{
			Dir:     "tests_markdown",
			SkipLog: "skipped_files.log",
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    filepath.Join(".testforge", "ledger.db"),
		},
	}
}

// GeneratorConfig converts the backend section into a backend.Config.
func (c *Config) GeneratorConfig() backend.Config {
	return backend.Config{
		Provider:          c.Backend.Provider,
		Host:              c.Backend.Host,
		Port:              c.Backend.Port,
		Model:             c.Backend.Model,
		Timeout:           time.Duration(c.Backend.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.Backend.RequestsPerSecond,
	}
}

// Thresholds converts the classify section into classification thresholds.
func (c *Config) Thresholds() classify.Thresholds {
	return classify.Thresholds{
		TrivialRatio:  c.Classify.TrivialRatio,
		SkipUnitCount: c.Classify.SkipUnitCount,
	}
}

// ScanOptions converts the scan section into extractor options.
func (c *Config) ScanOptions() scan.Options {
	return scan.Options{CountLiterals: c.Scan.CountLiterals}
}

// ResolvePath returns p joined to rootDir unless p is already absolute.
func ResolvePath(rootDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(rootDir, p)
}
