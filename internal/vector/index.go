// Package vector provides positional vector indexes searched by Euclidean distance.
package vector

import "context"

// VectorIndex stores vectors by insertion position: the i-th vector added is
// entry i, which callers map back to chunk i.
type VectorIndex interface {
	Add(ctx context.Context, vectors [][]float32) error
	// Search returns up to k entries in ascending distance order; equal
	// distances are ordered by ascending position.
	Search(ctx context.Context, query []float32, k int) ([]*VectorResult, error)
	// Reset removes every entry so the index can be repopulated from position 0.
	Reset() error
	Size() int
	Dimensions() int
	// Type names the implementation ("memory" or "faiss").
	Type() string
	Close() error
}

// VectorResult is a single search hit.
type VectorResult struct {
	Position int
	Distance float64 // Euclidean (L2), lower is closer
}
