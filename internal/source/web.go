package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/hyperjump/askdoc/internal/extract"
	"github.com/hyperjump/askdoc/internal/indexer"
	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/internal/sourceid"
	"github.com/hyperjump/askdoc/pkg/utils"
)

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 10 << 20

// WebLoader fetches a single page with one GET request and keeps its visible text.
type WebLoader struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// WebLoaderOption configures a WebLoader.
type WebLoaderOption func(*WebLoader)

// WithWebLogger sets a logger for debug output.
func WithWebLogger(l *zap.Logger) WebLoaderOption {
	return func(w *WebLoader) { w.logger = l }
}

// WithHTTPClient replaces the HTTP client; its Timeout is left as given.
func WithHTTPClient(c *http.Client) WebLoaderOption {
	return func(w *WebLoader) { w.client = c }
}

// NewWebLoader creates a web loader whose requests time out after timeout and
// identify as userAgent.
func NewWebLoader(timeout time.Duration, userAgent string, opts ...WebLoaderOption) *WebLoader {
	w := &WebLoader{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = utils.OrNop(w.logger)
	return w
}

// Load fetches rawURL once. Transport errors and non-2xx responses are
// ErrSourceUnreachable; nothing is retried.
func (w *WebLoader) Load(ctx context.Context, rawURL string) (*models.Document, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid URL %q", ErrSourceUnreachable, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	if w.userAgent != "" {
		req.Header.Set("User-Agent", w.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrSourceUnreachable, u, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrSourceUnreachable, err)
	}

	var title, text string
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType == "text/plain" {
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", ErrSourceUnreachable, err)
		}
		text = indexer.Preprocess(string(raw))
	} else {
		// The tokenizer only fails on read errors, so treat them like the plain-text path.
		page, err := extract.ParseHTML(body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", ErrSourceUnreachable, err)
		}
		title, text = page.Title, indexer.Preprocess(page.Text)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyContent, u)
	}
	w.logger.Debug("page fetched",
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return &models.Document{
		ID:       uuid.New().String(),
		Source:   u.String(),
		SourceID: sourceid.ForURL(u.String()),
		Title:    title,
		Text:     text,
		LoadedAt: time.Now(),
	}, nil
}
