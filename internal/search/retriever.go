// Package search finds the chunk of the current document nearest to a question.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/askdoc/internal/embedding"
	"github.com/hyperjump/askdoc/internal/indexer"
	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/pkg/utils"
)

// ErrIndexNotReady is returned when there is no populated snapshot to search.
var ErrIndexNotReady = errors.New("index not ready")

// Match is the chunk nearest to a query and its Euclidean distance.
type Match struct {
	Chunk    models.Chunk
	Distance float64
}

// Retriever embeds queries and looks up the single nearest chunk.
type Retriever struct {
	embedder embedding.Embedder
	logger   *zap.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) RetrieverOption {
	return func(r *Retriever) { r.logger = l }
}

// NewRetriever creates a retriever. embedder must be the one the snapshot was built with.
func NewRetriever(embedder embedding.Embedder, opts ...RetrieverOption) *Retriever {
	r := &Retriever{embedder: embedder}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = utils.OrNop(r.logger)
	return r
}

// Retrieve returns the chunk of snap nearest to query (k=1). Equal distances
// resolve to the chunk with the lowest index.
func (r *Retriever) Retrieve(ctx context.Context, snap *indexer.Snapshot, query string) (*Match, error) {
	if snap.Len() == 0 || snap.Index() == nil || snap.Index().Size() == 0 {
		return nil, ErrIndexNotReady
	}

	start := time.Now()
	q, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := snap.Index().Search(ctx, q, 1)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrIndexNotReady
	}
	best := results[0]
	chunk, ok := snap.Chunk(best.Position)
	if !ok {
		return nil, fmt.Errorf("vector search returned position %d outside %d chunks", best.Position, snap.Len())
	}
	r.logger.Debug("chunk retrieved",
		zap.String("chunk_id", chunk.ID),
		zap.Float64("distance", best.Distance),
		zap.Duration("elapsed", time.Since(start)))
	return &Match{Chunk: chunk, Distance: best.Distance}, nil
}
