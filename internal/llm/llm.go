// Package llm defines the model-client abstraction used by resume parsing
// and guidance. Callers must tolerate ErrNotConfigured and fall back to
// deterministic output.
package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the placeholder client. Services treat it
// as a signal to use their deterministic fallback, never as a request error.
var ErrNotConfigured = errors.New("llm not configured")

// Request is a single completion call.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// JSONOnly asks the model to reply with a bare JSON object.
	JSONOnly bool
}

// Client produces a completion for a request.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Placeholder is wired when no API key is configured.
type Placeholder struct{}

func (Placeholder) Complete(ctx context.Context, req Request) (string, error) {
	return "", ErrNotConfigured
}
