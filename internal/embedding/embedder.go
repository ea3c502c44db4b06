// Package embedding turns text into fixed-dimension vectors. The same Embedder
// instance must serve both chunk indexing and query embedding so that both live
// in one vector space.
package embedding

import (
	"context"
	"errors"
)

// ErrDimensionMismatch is returned when a provider yields a vector of the wrong size.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
