// Package ai is the single chokepoint for calls to the language model.
package ai

import (
	"context"
	"errors"
	"fmt"
)

var ErrGenerationFailed = errors.New("generation failed")

// GenerationError wraps a failed model call. The cause message is what
// callers surface to users.
type GenerationError struct {
	Model string
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %v", ErrGenerationFailed, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", ErrGenerationFailed, e.Model, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// Gateway maps a prompt to the generated reply. Implementations make a
// single attempt; timeouts and retries are layered on with the decorators
// in this package.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GatewayFunc func(ctx context.Context, prompt string) (string, error)

func (f GatewayFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
