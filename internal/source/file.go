package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/askdoc/internal/extract"
	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/internal/sourceid"
	"github.com/hyperjump/askdoc/pkg/utils"
)

// FileLoader reads local documents through the extract package.
type FileLoader struct {
	extractor *extract.Extractor
	logger    *zap.Logger
}

// FileLoaderOption configures a FileLoader.
type FileLoaderOption func(*FileLoader)

// WithFileLogger sets a logger for debug output.
func WithFileLogger(l *zap.Logger) FileLoaderOption {
	return func(f *FileLoader) { f.logger = l }
}

// NewFileLoader creates a file loader.
func NewFileLoader(opts ...FileLoaderOption) *FileLoader {
	f := &FileLoader{extractor: extract.NewExtractor()}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = utils.OrNop(f.logger)
	return f
}

// Load extracts the text of the file at path. Surrounding quotes (as left by
// drag-and-drop into a terminal) are stripped and a leading "~/" is expanded.
func (f *FileLoader) Load(ctx context.Context, path string) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	absPath, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, absPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, absPath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrSourceNotFound, absPath)
	}

	start := time.Now()
	text, err := f.extractor.Extract(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, absPath, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyContent, absPath)
	}
	f.logger.Debug("file extracted",
		zap.String("path", absPath),
		zap.Int64("size", info.Size()),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return &models.Document{
		ID:       uuid.New().String(),
		Source:   absPath,
		SourceID: sourceid.ForFile(absPath),
		Title:    filepath.Base(absPath),
		Text:     text,
		LoadedAt: time.Now(),
	}, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if len(path) >= 2 && (path[0] == '"' || path[0] == '\'') && path[len(path)-1] == path[0] {
		path = path[1 : len(path)-1]
	}
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
