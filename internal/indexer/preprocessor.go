package indexer

import "strings"

// Preprocess collapses every run of whitespace, non-breaking spaces included,
// to a single space and trims both ends. Chunking the result yields the same
// windows as chunking the raw text.
func Preprocess(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
