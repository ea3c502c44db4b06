package vector

import (
	"context"
	"fmt"
	"sync"

	"github.com/hyperjump/askdoc/pkg/utils"
)

// MemoryIndex is an exact brute-force L2 index held in memory.
type MemoryIndex struct {
	dimensions int
	vectors    [][]float64
	mu         sync.RWMutex
}

// NewMemoryIndex creates an in-memory vector index with the given dimension.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{dimensions: dimensions}, nil
}

// Type returns the index type identifier.
func (m *MemoryIndex) Type() string {
	return string(IndexTypeMemory)
}

// Add appends vectors at the next positions. Either all vectors are added or none.
func (m *MemoryIndex) Add(ctx context.Context, vectors [][]float32) error {
	converted := make([][]float64, len(vectors))
	for i, vec := range vectors {
		if len(vec) != m.dimensions {
			return fmt.Errorf("vector %d dimension mismatch: got %d, expected %d", i, len(vec), m.dimensions)
		}
		converted[i] = utils.ToFloat64(vec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors = append(m.vectors, converted...)
	return nil
}

// Search returns the k nearest entries to query.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int) ([]*VectorResult, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), m.dimensions)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if k <= 0 || len(m.vectors) == 0 {
		return nil, nil
	}
	q := utils.ToFloat64(query)
	results := make([]*VectorResult, len(m.vectors))
	for i, vec := range m.vectors {
		results[i] = &VectorResult{Position: i, Distance: EuclideanDistance(q, vec)}
	}
	sortResults(results)
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Reset drops every vector.
func (m *MemoryIndex) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors = nil
	return nil
}

// Size returns the number of vectors.
func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors)
}

// Dimensions returns the vector dimension.
func (m *MemoryIndex) Dimensions() int {
	return m.dimensions
}

// Close releases the stored vectors.
func (m *MemoryIndex) Close() error {
	return m.Reset()
}
