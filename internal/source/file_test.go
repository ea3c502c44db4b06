package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hyperjump/askdoc/internal/sourceid"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "Penguins live in the southern hemisphere.")
	l := NewFileLoader()

	doc, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text != "Penguins live in the southern hemisphere." {
		t.Errorf("Text = %q", doc.Text)
	}
	if doc.Title != "notes.txt" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.SourceID != sourceid.ForFile(path) {
		t.Errorf("SourceID = %q", doc.SourceID)
	}
	if doc.ID == "" || doc.LoadedAt.IsZero() {
		t.Error("ID and LoadedAt should be set")
	}

	again, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if again.SourceID != doc.SourceID {
		t.Error("SourceID should be stable across loads")
	}
	if again.ID == doc.ID {
		t.Error("each load should get a fresh ID")
	}
}

func TestFileLoader_QuotedPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quoted.md", "# Title\n\nBody text.")
	for _, in := range []string{`"` + path + `"`, "'" + path + "'", "  " + path + "  "} {
		doc, err := NewFileLoader().Load(context.Background(), in)
		if err != nil {
			t.Errorf("Load(%q): %v", in, err)
			continue
		}
		if doc.Source != path {
			t.Errorf("Source = %q, want %q", doc.Source, path)
		}
	}
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "")
	blank := writeFile(t, dir, "blank.txt", " \n\t ")
	corrupt := writeFile(t, dir, "broken.docx", "not a zip archive")

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "missing.pdf"), ErrSourceNotFound},
		{"directory", dir, ErrSourceNotFound},
		{"blank input", "   ", ErrSourceNotFound},
		{"empty file", empty, ErrEmptyContent},
		{"whitespace file", blank, ErrEmptyContent},
		{"corrupt docx", corrupt, ErrUnreadableSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewFileLoader().Load(context.Background(), tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if doc != nil {
				t.Error("expected nil document on failure")
			}
			if !IsLoadFailure(err) {
				t.Error("IsLoadFailure should be true")
			}
		})
	}
}

func TestFileLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFileLoader().Load(ctx, "/tmp/x.txt"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFileLoader_InvalidUTF8HTML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.html", "<p>caf\xe9 \xff\xfe open. Penguins swim fast. Done</p>")
	doc, err := NewFileLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(doc.Text) {
		t.Errorf("Text %q is not valid UTF-8", doc.Text)
	}
	if !strings.Contains(doc.Text, "Penguins swim fast.") {
		t.Errorf("Text = %q", doc.Text)
	}
}
