package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidProvider indicates an unsupported backend provider
	ErrInvalidProvider = errors.New("invalid backend provider")

	// ErrEmptyModel indicates missing backend model
	ErrEmptyModel = errors.New("empty backend model")

	// ErrEmptyHost indicates missing backend host
	ErrEmptyHost = errors.New("empty backend host")

	// ErrInvalidPort indicates a port outside 1-65535
	ErrInvalidPort = errors.New("invalid backend port")

	// ErrInvalidRate indicates a negative timeout or request rate
	ErrInvalidRate = errors.New("invalid backend limits")

	// ErrEmptyInclude indicates no include patterns
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidThreshold indicates classification thresholds out of range
	ErrInvalidThreshold = errors.New("invalid classification threshold")

	// ErrEmptyOutput indicates a missing output location
	ErrEmptyOutput = errors.New("empty output path")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	validators := []func(*Config) error{
		validateBackend,
		validatePaths,
		validateScan,
		validateClassify,
		validateOutput,
	}
	for _, validate := range validators {
		if err := validate(cfg); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateBackend(cfg *Config) error {
	var errs []error
	b := &cfg.Backend

	if provider := strings.ToLower(b.Provider); provider != "ollama" {
		errs = append(errs, fmt.Errorf("%w: must be 'ollama', got '%s'", ErrInvalidProvider, b.Provider))
	}

	if strings.TrimSpace(b.Model) == "" {
		errs = append(errs, fmt.Errorf("%w: model is required", ErrEmptyModel))
	}

	if strings.TrimSpace(b.Host) == "" {
		errs = append(errs, fmt.Errorf("%w: host is required", ErrEmptyHost))
	}

	if b.Port <= 0 || b.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidPort, b.Port))
	}

	if b.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout_seconds cannot be negative, got %d", ErrInvalidRate, b.TimeoutSeconds))
	}

	if b.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%w: requests_per_second cannot be negative, got %.2f", ErrInvalidRate, b.RequestsPerSecond))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *Config) error {
	// Ignore patterns may be empty; include must select something.
	if len(cfg.Paths.Include) == 0 {
		return fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude)
	}
	return nil
}

func validateScan(cfg *Config) error {
	if cfg.Scan.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Scan.Workers)
	}
	return nil
}

func validateClassify(cfg *Config) error {
	var errs []error

	if cfg.Classify.TrivialRatio <= 0 || cfg.Classify.TrivialRatio > 1 {
		errs = append(errs, fmt.Errorf("%w: trivial_ratio must be in (0, 1], got %.2f", ErrInvalidThreshold, cfg.Classify.TrivialRatio))
	}

	if cfg.Classify.SkipUnitCount < 0 {
		errs = append(errs, fmt.Errorf("%w: skip_unit_count cannot be negative, got %d", ErrInvalidThreshold, cfg.Classify.SkipUnitCount))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: output.dir is required", ErrEmptyOutput))
	}

	if strings.TrimSpace(cfg.Output.SkipLog) == "" {
		errs = append(errs, fmt.Errorf("%w: output.skip_log is required", ErrEmptyOutput))
	}

	if cfg.Storage.Enabled && strings.TrimSpace(cfg.Storage.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: storage.path is required when storage is enabled", ErrEmptyOutput))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
