package sourceid

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	id1 := ForFile("/foo/bar.txt")
	if id1 != ForFile("/foo/bar.txt") {
		t.Error("same path should give same ID")
	}
	if !strings.HasPrefix(id1, filePrefix) || len(id1) != len(filePrefix)+hashLen {
		t.Errorf("unexpected ID shape: %q", id1)
	}
	if id1 == ForFile("/foo/baz.txt") {
		t.Error("different paths should give different IDs")
	}
}

func TestForFile_normalized(t *testing.T) {
	id := ForFile("/foo/bar")
	for _, p := range []string{"/foo/bar/", "/foo/./bar", "/foo/baz/../bar"} {
		if ForFile(p) != id {
			t.Errorf("ForFile(%q) should match ForFile(/foo/bar)", p)
		}
	}
}

func TestForURL(t *testing.T) {
	id := ForURL("https://example.com/page")
	if !strings.HasPrefix(id, webPrefix) {
		t.Errorf("missing prefix: %q", id)
	}
	same := []string{
		"HTTPS://Example.COM/page",
		"https://example.com/page#section",
		"  https://example.com/page ",
	}
	for _, u := range same {
		if ForURL(u) != id {
			t.Errorf("ForURL(%q) should match", u)
		}
	}
	if ForURL("https://example.com/other") == id {
		t.Error("different paths should give different IDs")
	}
	if ForURL("https://example.com") != ForURL("https://example.com/") {
		t.Error("empty path should equal root path")
	}
}

func TestForURL_fileAndWebDiffer(t *testing.T) {
	if ForURL("/tmp/a") == ForFile("/tmp/a") {
		t.Error("file and web IDs must not collide")
	}
}
