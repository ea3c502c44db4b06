// Package source loads the raw text of a document from a local file or a web page.
package source

import (
	"context"
	"errors"
	"strings"

	"github.com/hyperjump/askdoc/internal/models"
)

// Load failures. Every error returned by a Loader wraps exactly one of these.
var (
	ErrSourceNotFound    = errors.New("source not found")
	ErrSourceUnreachable = errors.New("source unreachable")
	ErrUnreadableSource  = errors.New("source could not be read")
	ErrEmptyContent      = errors.New("no text found in source")
)

// Loader produces a Document from a source identifier (a path or a URL).
type Loader interface {
	Load(ctx context.Context, id string) (*models.Document, error)
}

// IsLoadFailure reports whether err is one of the load failures above.
func IsLoadFailure(err error) bool {
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrSourceUnreachable) ||
		errors.Is(err, ErrUnreadableSource) ||
		errors.Is(err, ErrEmptyContent)
}

// IsURL reports whether id names a web page rather than a local file.
func IsURL(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://")
}

// AutoLoader sends URLs to a web loader and everything else to a file loader.
type AutoLoader struct {
	File Loader
	Web  Loader
}

// NewAutoLoader returns a loader that dispatches on the identifier's scheme.
func NewAutoLoader(file, web Loader) *AutoLoader {
	return &AutoLoader{File: file, Web: web}
}

// Load dispatches id to the web or file loader.
func (a *AutoLoader) Load(ctx context.Context, id string) (*models.Document, error) {
	if IsURL(id) {
		return a.Web.Load(ctx, id)
	}
	return a.File.Load(ctx, id)
}
