// Package extract converts document files to plain text.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content, choosing the
// format from the file extension.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). Unknown extensions are read as plain text.
// The result is always valid UTF-8; invalid sequences become U+FFFD.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(ext) {
	case ".pdf":
		text, err = extractPDF(content)
	case ".docx":
		text, err = extractDOCX(content)
	case ".odt", ".rtf":
		text, err = extractCat(content)
	case ".xlsx":
		text, err = extractExcel(content)
	case ".md", ".markdown":
		text, err = extractMarkdown(content)
	case ".html", ".htm":
		var page *Page
		if page, err = ParseHTML(bytes.NewReader(content)); err == nil {
			text = page.Text
		}
	default:
		return extractPlain(content)
	}
	if err != nil {
		return "", err
	}
	return toValidUTF8(text), nil
}

// Formats lists the extensions with a dedicated extractor.
func Formats() []string {
	return []string{".pdf", ".docx", ".odt", ".rtf", ".xlsx", ".md", ".markdown", ".html", ".htm", ".txt"}
}
