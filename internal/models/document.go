// Package models defines core data structures for documents, chunks, and answers.
package models

import "time"

// Document is the raw text produced by a loader for one source.
type Document struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	SourceID string    `json:"source_id"`
	Title    string    `json:"title,omitempty"`
	Text     string    `json:"-"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Chunk is an immutable, zero-indexed word window of a Document.
type Chunk struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// WordCount returns the number of whitespace-separated words in the chunk.
func (c Chunk) WordCount() int {
	n := 0
	inWord := false
	for _, r := range c.Text {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}
