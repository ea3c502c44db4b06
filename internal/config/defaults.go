package config

import "time"

const (
	// DefaultChunkSize is the number of words per chunk.
	DefaultChunkSize = 100
	// DefaultDimensions matches all-MiniLM-L6-v2.
	DefaultDimensions = 384
	// DefaultFallbackAnswer is returned when no span in the context matches the question.
	DefaultFallbackAnswer = "No answer found in the document."
	// DefaultUserAgent is sent with the single page request.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Chunking.ChunkSize <= 0 {
		cfg.Chunking.ChunkSize = DefaultChunkSize
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "hashing"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = DefaultDimensions
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/askdoc/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1000
	}
	if cfg.Embedding.OpenAIModel == "" {
		cfg.Embedding.OpenAIModel = "text-embedding-3-small"
	}
	if cfg.Index.Type == "" {
		cfg.Index.Type = "memory"
	}
	if cfg.Answer.Provider == "" {
		cfg.Answer.Provider = "lexical"
	}
	if cfg.Answer.OpenAIModel == "" {
		cfg.Answer.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.Answer.Fallback == "" {
		cfg.Answer.Fallback = DefaultFallbackAnswer
	}
	if cfg.Web.Timeout <= 0 {
		cfg.Web.Timeout = 10 * time.Second
	}
	if cfg.Web.UserAgent == "" {
		cfg.Web.UserAgent = DefaultUserAgent
	}
}
