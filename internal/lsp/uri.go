package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// UriToPath returns the local path of a file:// URI, or "" for any other scheme.
func UriToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return ""
	}
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return filepath.FromSlash(u.Path)
}

// IsLumenURI reports whether uri names a .lum file.
func IsLumenURI(uri string) bool {
	return strings.EqualFold(filepath.Ext(UriToPath(uri)), ".lum")
}
