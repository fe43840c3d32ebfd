package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnsupportedProvider indicates an unknown backend provider name.
var ErrUnsupportedProvider = errors.New("unsupported generation provider")

// ChunkFunc receives streamed pieces of a response as they arrive.
type ChunkFunc func(chunk string)

// Generator turns a prompt into generated text.
// Implementations must be safe for concurrent use.
type Generator interface {
	// Generate sends prompt to the backend and returns the full response.
	// onChunk, if non-nil, is called with each streamed piece.
	Generate(ctx context.Context, prompt string, onChunk ChunkFunc) (string, error)

	// Model returns the model identifier used for generation.
	Model() string
}

// Config contains configuration for creating a generator.
type Config struct {
	// Provider selects the backend ("ollama").
	Provider string

	// Host and Port locate the backend server.
	Host string
	Port int

	// Model is the backend model identifier, e.g. "llama3.2:latest".
	Model string

	// Timeout bounds a single generation request. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64
}

// ServerURL returns the base URL of the backend server.
func (c Config) ServerURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// NewGenerator creates a generator based on the configuration.
func NewGenerator(cfg Config) (Generator, error) {
	var (
		gen Generator
		err error
	)

	switch strings.ToLower(cfg.Provider) {
	case "ollama", "":
		gen, err = newOllamaGenerator(cfg)
	default:
		return nil, fmt.Errorf("%w: %s (supported: ollama)", ErrUnsupportedProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerSecond > 0 {
		gen = NewThrottled(gen, cfg.RequestsPerSecond)
	}
	return gen, nil
}
