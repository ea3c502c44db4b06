// Package config provides configuration loading and structs for askdoc.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug" env:"ASKDOC_DEBUG"`
	LogFile   string          `yaml:"log_file" env:"ASKDOC_LOG_FILE"`
	Source    string          `yaml:"source" env:"ASKDOC_SOURCE"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Index     IndexConfig     `yaml:"index"`
	Answer    AnswerConfig    `yaml:"answer"`
	Web       WebConfig       `yaml:"web"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
}

// ChunkingConfig holds word-window settings.
type ChunkingConfig struct {
	ChunkSize int `yaml:"chunk_size" env:"ASKDOC_CHUNK_SIZE"`
}

// EmbeddingConfig selects and tunes the embedder shared by indexing and querying.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider" env:"ASKDOC_EMBEDDING_PROVIDER"`
	Dimensions  int    `yaml:"dimensions" env:"ASKDOC_EMBEDDING_DIMENSIONS"`
	ModelPath   string `yaml:"model_path" env:"ASKDOC_EMBEDDING_MODEL_PATH"`
	MaxTokens   int    `yaml:"max_tokens"`
	CacheSize   int    `yaml:"cache_size"`
	OpenAIModel string `yaml:"openai_model" env:"ASKDOC_EMBEDDING_OPENAI_MODEL"`
}

// IndexConfig selects the vector index implementation.
type IndexConfig struct {
	Type string `yaml:"type" env:"ASKDOC_INDEX_TYPE"`
}

// AnswerConfig selects the answer extractor.
type AnswerConfig struct {
	Provider    string `yaml:"provider" env:"ASKDOC_ANSWER_PROVIDER"`
	OpenAIModel string `yaml:"openai_model" env:"ASKDOC_ANSWER_OPENAI_MODEL"`
	Fallback    string `yaml:"fallback"`
}

// WebConfig holds settings for fetching a page.
type WebConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"ASKDOC_WEB_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"ASKDOC_WEB_USER_AGENT"`
}

// OpenAIConfig holds API credentials shared by the OpenAI embedder and extractor.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads and parses the config file at path, applies environment overrides,
// expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile, configDir)
	}

	return &cfg, nil
}

// ApplyEnv overrides cfg with any ASKDOC_* / OPENAI_* variables that are set.
// Unset variables leave the current value alone.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
