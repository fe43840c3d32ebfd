package backend

import (
	"context"
	"sync"
)

// MockGenerator is a deterministic Generator for tests. It records every
// prompt it receives.
type MockGenerator struct {
	model   string
	respond func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// NewMockGenerator returns a generator that answers with respond(prompt).
// A nil respond echoes a fixed fenced block.
func NewMockGenerator(model string, respond func(prompt string) (string, error)) *MockGenerator {
	if respond == nil {
		respond = func(string) (string, error) {
			return "```java\nclass GeneratedTest {}\n```", nil
		}
	}
	return &MockGenerator{model: model, respond: respond}
}

// Generate records the prompt and returns the canned response, delivering it
// as a single chunk.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, onChunk ChunkFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	out, err := m.respond(prompt)
	if err != nil {
		return "", err
	}
	if onChunk != nil {
		onChunk(out)
	}
	return out, nil
}

func (m *MockGenerator) Model() string {
	return m.model
}

// Prompts returns a copy of the prompts received so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns how many prompts were received.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
