package ai

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// WithTimeout bounds every call to g by d. A non-positive d returns g as is.
func WithTimeout(g Gateway, d time.Duration) Gateway {
	if d <= 0 {
		return g
	}
	return GatewayFunc(func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return g.Generate(ctx, prompt)
	})
}

type Retry struct {
	next     Gateway
	maxTries uint

	// InitialInterval is the first backoff delay; later delays grow exponentially.
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// WithRetry retries failed calls up to maxTries attempts in total.
// maxTries <= 1 returns g as is.
func WithRetry(g Gateway, maxTries int) Gateway {
	if maxTries <= 1 {
		return g
	}
	return &Retry{
		next:            g,
		maxTries:        uint(maxTries),
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func (r *Retry) Generate(ctx context.Context, prompt string) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.InitialInterval
	b.MaxInterval = r.MaxInterval

	return backoff.Retry(ctx, func() (string, error) {
		out, err := r.next.Generate(ctx, prompt)
		// Only the caller's context ends the loop; a per-attempt deadline
		// from an inner WithTimeout is retried like any other failure.
		if err != nil && ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return out, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(r.maxTries))
}
