package embedding

import (
	"testing"

	"github.com/hyperjump/askdoc/internal/config"
)

func TestNewEmbedder(t *testing.T) {
	e, err := NewEmbedder(config.EmbeddingConfig{Provider: "hashing", Dimensions: 64, CacheSize: 10}, config.OpenAIConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(*CachedEmbedder); !ok {
		t.Errorf("expected cached embedder, got %T", e)
	}
	if e.Dimensions() != 64 {
		t.Errorf("Dimensions() = %d, want 64", e.Dimensions())
	}

	e, err = NewEmbedder(config.EmbeddingConfig{Provider: "hashing", Dimensions: 64}, config.OpenAIConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(*HashingEmbedder); !ok {
		t.Errorf("expected bare hashing embedder without cache, got %T", e)
	}
}

func TestNewEmbedder_Errors(t *testing.T) {
	if _, err := NewEmbedder(config.EmbeddingConfig{Provider: "word2vec"}, config.OpenAIConfig{}); err == nil {
		t.Error("expected error for unknown provider")
	}
	if _, err := NewEmbedder(config.EmbeddingConfig{Provider: "openai", Dimensions: 8}, config.OpenAIConfig{}); err == nil {
		t.Error("expected error for openai without key")
	}
}
