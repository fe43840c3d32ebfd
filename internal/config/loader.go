package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (TESTFORGE_*)
// 2. Config file (.testforge/config.yml or .testforge/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(l.rootDir, ".testforge"))

	v.SetEnvPrefix("TESTFORGE")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., TESTFORGE_BACKEND_MODEL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		v.BindEnv(key)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// envKeys are the scalar keys that can be overridden from the environment.
var envKeys = []string{
	"backend.provider",
	"backend.host",
	"backend.port",
	"backend.model",
	"backend.timeout_seconds",
	"backend.requests_per_second",

	"scan.workers",
	"scan.count_literals",

	"classify.trivial_ratio",
	"classify.skip_unit_count",

	"output.dir",
	"output.skip_log",

	"storage.enabled",
	"storage.path",
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("backend.provider", defaults.Backend.Provider)
	v.SetDefault("backend.host", defaults.Backend.Host)
	v.SetDefault("backend.port", defaults.Backend.Port)
	v.SetDefault("backend.model", defaults.Backend.Model)
	v.SetDefault("backend.timeout_seconds", defaults.Backend.TimeoutSeconds)
	v.SetDefault("backend.requests_per_second", defaults.Backend.RequestsPerSecond)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("scan.workers", defaults.Scan.Workers)
	v.SetDefault("scan.count_literals", defaults.Scan.CountLiterals)

	v.SetDefault("classify.trivial_ratio", defaults.Classify.TrivialRatio)
	v.SetDefault("classify.skip_unit_count", defaults.Classify.SkipUnitCount)

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.skip_log", defaults.Output.SkipLog)

	v.SetDefault("storage.enabled", defaults.Storage.Enabled)
	v.SetDefault("storage.path", defaults.Storage.Path)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
