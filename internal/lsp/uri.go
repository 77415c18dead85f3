package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// uriToPath converts a file: URI to an OS path. Other schemes give "".
// "file:///C:/x.cs" becomes "C:\x.cs" on Windows and "C:/x.cs" elsewhere.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	p := u.Path
	if hasDriveLetter(strings.TrimPrefix(p, "/")) {
		p = strings.TrimPrefix(p, "/")
	}
	if u.Host != "" && u.Host != "localhost" {
		p = "//" + u.Host + p // UNC share
	}
	return filepath.Clean(filepath.FromSlash(p))
}

// pathToURI converts a path to a file: URI, making it absolute first.
func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if hasDriveLetter(p) {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// canonicalURI normalizes file URIs so that differently escaped spellings of
// one path share a document entry. Other schemes (untitled:) are kept as is.
func canonicalURI(uri string) string {
	if path := uriToPath(uri); path != "" {
		return pathToURI(path)
	}
	return uri
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0] | 0x20
	return c >= 'a' && c <= 'z'
}
