// Package session holds the state of one interactive question-answering
// session: which document is loaded and the snapshot questions run against.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/askdoc/internal/answer"
	"github.com/hyperjump/askdoc/internal/indexer"
	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/internal/search"
	"github.com/hyperjump/askdoc/internal/source"
	"github.com/hyperjump/askdoc/pkg/utils"
)

var (
	// ErrExtractionFailed wraps retrieval and answer extraction failures of Ask.
	ErrExtractionFailed = errors.New("answer extraction failed")
	// ErrTerminated is returned by Load and Ask after Close.
	ErrTerminated = errors.New("session terminated")
)

// State is the lifecycle state of a Session.
type State int

const (
	NoDocumentLoaded State = iota
	Ready
	Terminated
)

func (s State) String() string {
	switch s {
	case NoDocumentLoaded:
		return "no_document_loaded"
	case Ready:
		return "ready"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Builder turns chunks into a searchable snapshot.
type Builder interface {
	Build(ctx context.Context, chunks []models.Chunk) (*indexer.Snapshot, error)
}

// Retriever finds the chunk of a snapshot nearest to a question.
type Retriever interface {
	Retrieve(ctx context.Context, snap *indexer.Snapshot, query string) (*search.Match, error)
}

// Session runs the load → chunk → index pipeline and answers questions
// against the most recently loaded document.
type Session struct {
	loader    source.Loader
	chunker   *indexer.Chunker
	builder   Builder
	retriever Retriever
	extractor answer.Extractor
	progress  io.Writer
	logger    *zap.Logger

	mu    sync.RWMutex
	state State
	snap  *indexer.Snapshot
	doc   *models.Document
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets a logger for pipeline diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithProgress makes Load write one line per pipeline step to w.
func WithProgress(w io.Writer) Option {
	return func(s *Session) { s.progress = w }
}

// New creates a session in the NoDocumentLoaded state. builder and retriever
// must share one embedder so queries and chunks live in the same vector space.
func New(loader source.Loader, chunker *indexer.Chunker, builder Builder, retriever Retriever, extractor answer.Extractor, opts ...Option) *Session {
	s := &Session{
		loader:    loader,
		chunker:   chunker,
		builder:   builder,
		retriever: retriever,
		extractor: extractor,
		state:     NoDocumentLoaded,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = utils.OrNop(s.logger)
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Document returns the loaded document, or nil.
func (s *Session) Document() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Chunks returns the number of chunks of the loaded document.
func (s *Session) Chunks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Len()
}

// Load reads src, chunks and indexes it, and makes it the current document.
// On failure the session keeps its previous document and state.
func (s *Session) Load(ctx context.Context, src string) (*models.Document, error) {
	if s.State() == Terminated {
		return nil, ErrTerminated
	}
	start := time.Now()

	s.report("Extracting text...")
	doc, err := s.loader.Load(ctx, src)
	if err != nil {
		if errors.Is(err, source.ErrEmptyContent) {
			return nil, fmt.Errorf("%w: %w", err, indexer.ErrEmptyChunkSet)
		}
		return nil, err
	}

	s.report("Chunking text...")
	chunks := s.chunker.Chunk(doc.SourceID, doc.Text)

	s.report("Storing in vector store...")
	snap, err := s.builder.Build(ctx, chunks)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state == Terminated {
		s.mu.Unlock()
		_ = snap.Close()
		return nil, ErrTerminated
	}
	old := s.snap
	s.snap, s.doc, s.state = snap, doc, Ready
	s.mu.Unlock()

	// Ask holds the read lock for the whole search, so no query still uses old.
	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close previous index", zap.Error(err))
	}
	s.report("Document processed successfully!")
	s.logger.Debug("document loaded",
		zap.String("source", doc.Source),
		zap.String("source_id", doc.SourceID),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

// Ask answers question from the single chunk nearest to it. Before any
// document is loaded it returns a not-ready answer and no error.
func (s *Session) Ask(ctx context.Context, question string) (*models.Answer, error) {
	s.mu.RLock()
	if s.state == Terminated {
		s.mu.RUnlock()
		return nil, ErrTerminated
	}
	if s.snap == nil {
		s.mu.RUnlock()
		return &models.Answer{
			Question: question,
			Text:     models.NothingProcessedYet,
			Status:   models.StatusNotReady,
		}, nil
	}
	match, err := s.retriever.Retrieve(ctx, s.snap, question)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	text, err := s.extractor.Extract(ctx, question, match.Chunk.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	chunk := match.Chunk
	s.logger.Debug("question answered",
		zap.String("question", utils.TruncateWords(question, 12)),
		zap.String("chunk_id", chunk.ID),
		zap.Float64("distance", match.Distance))
	return &models.Answer{
		Question: question,
		Text:     text,
		Status:   models.StatusAnswered,
		Context:  &chunk,
		Distance: match.Distance,
	}, nil
}

// Close terminates the session and releases the current index.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Terminated {
		return nil
	}
	s.state = Terminated
	err := s.snap.Close()
	s.snap, s.doc = nil, nil
	return err
}

func (s *Session) report(msg string) {
	if s.progress != nil {
		fmt.Fprintln(s.progress, msg)
	}
}
