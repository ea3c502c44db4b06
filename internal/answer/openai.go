package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hyperjump/askdoc/pkg/utils"
)

const systemPrompt = `You answer questions using only the passage you are given.
Reply with the shortest exact span copied from the passage that answers the question.
Do not rephrase, explain or add words. If the passage does not contain the answer, reply NONE.`

// OpenAIExtractor asks a chat model for an extractive answer. Replies that are
// not a literal span of the context are replaced by the fallback.
type OpenAIExtractor struct {
	client   *openai.Client
	model    string
	fallback string
	logger   *zap.Logger
}

// Option configures an OpenAIExtractor.
type Option func(*OpenAIExtractor)

// WithLogger sets a logger for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *OpenAIExtractor) { e.logger = l }
}

// NewOpenAIExtractor creates a chat-completion extractor. baseURL may be empty for the public API.
func NewOpenAIExtractor(apiKey, baseURL, model, fallback string, opts ...Option) (*OpenAIExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if fallback == "" {
		fallback = DefaultFallback
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	e := &OpenAIExtractor{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = utils.OrNop(e.logger)
	return e, nil
}

// Extract sends the question and passage in one chat request.
func (e *OpenAIExtractor) Extract(ctx context.Context, question, passage string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Passage:\n%s\n\nQuestion: %s", passage, question)},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat: empty response")
	}

	reply := cleanReply(resp.Choices[0].Message.Content)
	if reply == "" || strings.EqualFold(reply, "none") {
		return e.fallback, nil
	}
	span, ok := findSpan(passage, reply)
	if !ok {
		e.logger.Debug("model reply is not a span of the context", zap.String("reply", utils.Truncate(reply, 80)))
		return e.fallback, nil
	}
	return span, nil
}

func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimRight(s, ".")
	return strings.TrimSpace(s)
}

// findSpan locates needle in haystack ignoring case and returns the span with
// the haystack's own casing.
func findSpan(haystack, needle string) (string, bool) {
	if i := strings.Index(haystack, needle); i >= 0 {
		return needle, true
	}
	lh, ln := strings.ToLower(haystack), strings.ToLower(needle)
	// Lowercasing can change byte lengths outside ASCII; only trust offsets when it does not.
	if len(lh) != len(haystack) || len(ln) != len(needle) {
		return "", false
	}
	i := strings.Index(lh, ln)
	if i < 0 {
		return "", false
	}
	return haystack[i : i+len(needle)], true
}
