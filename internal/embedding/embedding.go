// Package embedding defines the gateway that converts text into fixed-length
// numeric vectors. Providers live in subpackages.
package embedding

import (
	"context"
	"errors"
)

// Embedder abstracts the embedding provider.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ErrUnavailable indicates the embedding provider could not serve the request.
// Callers defer the evaluation and retry later.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Placeholder is a stub implementation until provider wiring is added.
type Placeholder struct{}

// Embed always reports the provider as unavailable.
func (Placeholder) Embed(ctx context.Context, text string) ([]float64, error) {
	_ = ctx
	_ = text
	return nil, ErrUnavailable
}
