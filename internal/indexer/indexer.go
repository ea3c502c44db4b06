package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hyperjump/askdoc/internal/embedding"
	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/internal/vector"
	"github.com/hyperjump/askdoc/pkg/utils"
	"go.uber.org/zap"
)

// ErrEmptyChunkSet is returned when Build is given no chunks.
var ErrEmptyChunkSet = errors.New("no text chunks to index")

// Snapshot is an immutable pair of chunks and the vector index built from
// them: entry i of the index is chunks[i]. A session swaps whole snapshots so
// queries never mix chunks of one document with vectors of another.
type Snapshot struct {
	chunks []models.Chunk
	index  vector.VectorIndex
}

// Len returns the number of chunks.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chunks)
}

// Chunk returns the chunk at position i.
func (s *Snapshot) Chunk(i int) (models.Chunk, bool) {
	if s == nil || i < 0 || i >= len(s.chunks) {
		return models.Chunk{}, false
	}
	return s.chunks[i], true
}

// Chunks returns a copy of all chunks in index order.
func (s *Snapshot) Chunks() []models.Chunk {
	if s == nil {
		return nil
	}
	out := make([]models.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Index returns the vector index; callers must not modify it.
func (s *Snapshot) Index() vector.VectorIndex {
	if s == nil {
		return nil
	}
	return s.index
}

// Close releases the vector index.
func (s *Snapshot) Close() error {
	if s == nil || s.index == nil {
		return nil
	}
	return s.index.Close()
}

// Indexer embeds chunks and builds snapshots.
type Indexer struct {
	embedder embedding.Embedder
	newIndex vector.Constructor
	logger   *zap.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) IndexerOption {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer creates an indexer. newIndex may be nil, in which case an in-memory index is used.
func NewIndexer(embedder embedding.Embedder, newIndex vector.Constructor, opts ...IndexerOption) *Indexer {
	if newIndex == nil {
		newIndex = vector.ConstructorFor(string(vector.IndexTypeMemory))
	}
	idx := &Indexer{
		embedder: embedder,
		newIndex: newIndex,
	}
	for _, opt := range opts {
		opt(idx)
	}
	idx.logger = utils.OrNop(idx.logger)
	return idx
}

// Embedder returns the embedder used for chunks; queries must use the same one.
func (idx *Indexer) Embedder() embedding.Embedder {
	return idx.embedder
}

// Build embeds every chunk in one batch and populates a fresh index. Any
// failure returns no snapshot, so the caller keeps whatever it had before.
func (idx *Indexer) Build(ctx context.Context, chunks []models.Chunk) (*Snapshot, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyChunkSet
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	start := time.Now()
	embeddings, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("failed to generate embeddings: got %d for %d chunks", len(embeddings), len(chunks))
	}
	dims := idx.embedder.Dimensions()
	for i, emb := range embeddings {
		if len(emb) != dims {
			return nil, fmt.Errorf("chunk %d: %w: got %d, want %d", i, embedding.ErrDimensionMismatch, len(emb), dims)
		}
	}
	idx.logger.Debug("chunks embedded",
		zap.Int("chunks", len(chunks)),
		zap.Int("dimensions", dims),
		zap.Duration("elapsed", time.Since(start)))

	index, err := idx.newIndex(dims)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector index: %w", err)
	}
	if err := index.Reset(); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to reset vector index: %w", err)
	}
	if err := index.Add(ctx, embeddings); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to index vectors: %w", err)
	}

	owned := make([]models.Chunk, len(chunks))
	copy(owned, chunks)
	idx.logger.Debug("snapshot built",
		zap.String("index", index.Type()),
		zap.Int("vectors", index.Size()))
	return &Snapshot{chunks: owned, index: index}, nil
}
