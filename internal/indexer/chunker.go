// Package indexer splits document text into word-window chunks and builds the
// vector index searched at question time.
package indexer

import (
	"strconv"
	"strings"

	"github.com/hyperjump/askdoc/internal/models"
)

// DefaultChunkSize is the number of words per chunk when none is configured.
const DefaultChunkSize = 100

// Chunker splits text into consecutive, non-overlapping word windows.
type Chunker struct {
	chunkSize int
}

// NewChunker creates a chunker with the given size in words. A non-positive
// size falls back to DefaultChunkSize.
func NewChunker(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{chunkSize: chunkSize}
}

// Size returns the window size in words.
func (c *Chunker) Size() int {
	return c.chunkSize
}

// Chunk splits text on whitespace and groups the words into windows of the
// chunk size; the last window may be shorter. Whitespace-only text yields nil.
// Chunk IDs are "<sourceID>#<index>".
func (c *Chunker) Chunk(sourceID, text string) []models.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	chunks := make([]models.Chunk, 0, (len(words)+c.chunkSize-1)/c.chunkSize)
	for i := 0; i < len(words); i += c.chunkSize {
		end := i + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		index := len(chunks)
		chunks = append(chunks, models.Chunk{
			ID:    ChunkID(sourceID, index),
			Index: index,
			Text:  strings.Join(words[i:end], " "),
		})
	}
	return chunks
}

// ChunkID returns the identifier of the index-th chunk of sourceID.
func ChunkID(sourceID string, index int) string {
	return sourceID + "#" + strconv.Itoa(index)
}
