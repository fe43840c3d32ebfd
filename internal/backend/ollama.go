package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// ollamaGenerator streams completions from an Ollama server.
type ollamaGenerator struct {
	llm   *ollama.LLM
	model string
}

func newOllamaGenerator(cfg Config) (*ollamaGenerator, error) {
	llm, err := ollama.New(
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(cfg.ServerURL()),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &ollamaGenerator{llm: llm, model: cfg.Model}, nil
}

// Generate sends a single-prompt completion request, streaming chunks to onChunk.
func (g *ollamaGenerator) Generate(ctx context.Context, prompt string, onChunk ChunkFunc) (string, error) {
	var opts []llms.CallOption
	if onChunk != nil {
		opts = append(opts, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			onChunk(string(chunk))
			return nil
		}))
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}
	return out, nil
}

func (g *ollamaGenerator) Model() string {
	return g.model
}
