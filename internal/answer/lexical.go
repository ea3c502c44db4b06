package answer

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultFallback is returned when no sentence of the context shares a content word with the question.
const DefaultFallback = "No answer found in the document."

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true, "be": true,
	"by": true, "can": true, "did": true, "do": true, "does": true, "for": true, "from": true,
	"has": true, "have": true, "how": true, "i": true, "in": true, "is": true, "it": true,
	"its": true, "many": true, "much": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "their": true, "there": true, "they": true, "this": true, "to": true, "was": true,
	"were": true, "what": true, "when": true, "where": true, "which": true, "who": true,
	"whom": true, "why": true, "will": true, "with": true, "you": true, "your": true,
}

// LexicalExtractor picks the sentence of the context that shares the most
// content words with the question and returns it verbatim. It needs no model.
type LexicalExtractor struct {
	fallback string
}

// NewLexicalExtractor creates a lexical extractor. An empty fallback uses DefaultFallback.
func NewLexicalExtractor(fallback string) *LexicalExtractor {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &LexicalExtractor{fallback: fallback}
}

// Extract returns the best-scoring sentence, preferring the earliest on ties.
func (e *LexicalExtractor) Extract(ctx context.Context, question, passage string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	want := contentTerms(question)
	if len(want) == 0 {
		return e.fallback, nil
	}

	best, bestScore := "", 0
	for _, sentence := range Sentences(passage) {
		score := 0
		for term := range contentTerms(sentence) {
			if want[term] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = sentence, score
		}
	}
	if bestScore == 0 {
		return e.fallback, nil
	}
	return best, nil
}

// Sentences splits text after '.', '!' or '?' followed by whitespace, and at
// the end of text. Each sentence is trimmed and is a substring of text, which
// may contain invalid UTF-8.
func Sentences(text string) []string {
	var out []string
	start := 0
	for off, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		end := off + 1
		if end < len(text) {
			if next, _ := utf8.DecodeRuneInString(text[end:]); !unicode.IsSpace(next) {
				continue
			}
		}
		if s := strings.TrimSpace(text[start:end]); s != "" {
			out = append(out, s)
		}
		start = end
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// contentTerms returns the lowercased non-stopword terms of text, with a
// trailing plural "s" removed so "penguins" matches "penguin".
func contentTerms(text string) map[string]bool {
	terms := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if stopwords[w] {
			continue
		}
		if len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
			w = strings.TrimSuffix(w, "s")
		}
		terms[w] = true
	}
	return terms
}
