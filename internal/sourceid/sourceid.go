// Package sourceid derives stable identifiers for document sources so that
// loading the same file or page twice yields the same chunk IDs.
package sourceid

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	filePrefix = "file:"
	webPrefix  = "web:"
	// hashLen is the number of hex characters kept from the SHA-256 digest.
	hashLen = 16
)

// ForFile returns the ID of a local file. Callers should pass an absolute path;
// the path is cleaned so "/a/./b" and "/a/b/" match "/a/b".
func ForFile(path string) string {
	return filePrefix + digest(filepath.Clean(path))
}

// ForURL returns the ID of a web page. Scheme and host are case-insensitive and
// the fragment is ignored, since none of them change the fetched document.
func ForURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return webPrefix + digest(rawURL)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return webPrefix + digest(u.String())
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:hashLen]
}
