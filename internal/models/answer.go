package models

// AnswerStatus tells callers which outcome an Answer represents without
// inspecting its text.
type AnswerStatus string

const (
	// StatusAnswered means the extractor produced an answer (possibly the low-confidence fallback).
	StatusAnswered AnswerStatus = "answered"
	// StatusNotReady means no document has been indexed yet.
	StatusNotReady AnswerStatus = "not_ready"
)

// NothingProcessedYet is the answer text returned when a question arrives before any load.
const NothingProcessedYet = "No document processed yet."

// Answer is the result of one question against the current document.
type Answer struct {
	Question string       `json:"question"`
	Text     string       `json:"answer"`
	Status   AnswerStatus `json:"status"`
	// Context is the single chunk the answer was extracted from; nil when not ready.
	Context  *Chunk  `json:"context,omitempty"`
	Distance float64 `json:"distance"`
}

// Ready reports whether the answer came from an indexed document.
func (a *Answer) Ready() bool {
	return a != nil && a.Status != StatusNotReady
}
