// Package answer extracts a short answer to a question from a single context passage.
package answer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/askdoc/internal/config"
)

// Extractor returns an answer to question found in context. Implementations
// return a span of context, or their fallback text when context holds no answer.
type Extractor interface {
	Extract(ctx context.Context, question, context string) (string, error)
}

// NewExtractor creates the extractor named by cfg.Provider ("lexical" or "openai").
func NewExtractor(cfg config.AnswerConfig, oa config.OpenAIConfig, logger *zap.Logger) (Extractor, error) {
	switch cfg.Provider {
	case "lexical", "":
		return NewLexicalExtractor(cfg.Fallback), nil
	case "openai":
		e, err := NewOpenAIExtractor(oa.APIKey, oa.BaseURL, cfg.OpenAIModel, cfg.Fallback, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown answer provider: %s", cfg.Provider)
	}
}
