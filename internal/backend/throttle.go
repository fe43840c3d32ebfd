package backend

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// Throttled limits how fast requests reach the wrapped generator.
type Throttled struct {
	next    Generator
	limiter *rate.Limiter
}

// NewThrottled wraps next with a limiter allowing requestsPerSecond requests,
// bursting up to one second's worth (at least one).
func NewThrottled(next Generator, requestsPerSecond float64) *Throttled {
	burst := int(math.Ceil(requestsPerSecond))
	if burst < 1 {
		burst = 1
	}
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Generate waits for the limiter, then delegates.
func (t *Throttled) Generate(ctx context.Context, prompt string, onChunk ChunkFunc) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.Generate(ctx, prompt, onChunk)
}

func (t *Throttled) Model() string {
	return t.next.Model()
}
