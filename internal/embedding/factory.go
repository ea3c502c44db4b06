package embedding

import (
	"fmt"

	"github.com/hyperjump/askdoc/internal/config"
)

// NewEmbedder creates an embedder for cfg.Provider ("hashing", "onnx" or "openai"),
// wrapped in an LRU cache when cfg.CacheSize is positive.
func NewEmbedder(cfg config.EmbeddingConfig, oa config.OpenAIConfig) (Embedder, error) {
	var (
		e   Embedder
		err error
	)
	switch cfg.Provider {
	case "hashing", "":
		e = NewHashingEmbedder(cfg.Dimensions)
	case "onnx":
		e, err = NewONNXEmbedder(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens)
	case "openai":
		e, err = NewOpenAIEmbedder(oa.APIKey, oa.BaseURL, cfg.OpenAIModel, cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	if cfg.CacheSize > 0 {
		e = NewCachedEmbedder(e, cfg.CacheSize)
	}
	return e, nil
}
