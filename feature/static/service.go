package static

import (
	"fmt"
	"html"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var mimeOnce sync.Once

// registerMIMETypes adds the extensions the OS table tends to miss. WASM
// must be served as application/wasm for streaming compilation, and .data
// is the conventional extension for emscripten preload bundles.
func registerMIMETypes() {
	mimeOnce.Do(func() {
		_ = mime.AddExtensionType(".wasm", "application/wasm")
		_ = mime.AddExtensionType(".data", "application/octet-stream")
	})
}

// Service maps request paths to files under the root directory.
type Service struct {
	root   string
	logger *zap.Logger
}

// NewService creates a new static file service serving from root.
func NewService(root string, logger *zap.Logger) *Service {
	registerMIMETypes()
	return &Service{
		root:   root,
		logger: logger,
	}
}

// Resolved is the outcome of mapping a request path onto the filesystem.
type Resolved struct {
	// Path is the filesystem path to serve.
	Path string
	// Size is the file size in bytes. Zero when IsDir is set.
	Size int64
	// IsDir marks a directory that cannot be served as file bytes; the
	// caller should redirect to the trailing-slash form or render a listing.
	IsDir bool
}

// Resolve maps a URL path to a file under the root. The path is cleaned
// while anchored at "/" so traversal sequences can never escape the root.
// Directories requested with a trailing slash resolve to their index.html
// when one exists; without the slash they are reported as directories so
// the handler can redirect first, keeping relative links inside the index
// anchored at the directory.
func (s *Service) Resolve(reqPath string) (*Resolved, error) {
	clean := path.Clean("/" + reqPath)
	full := filepath.Join(s.root, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		if !strings.HasSuffix(reqPath, "/") {
			return &Resolved{Path: full, IsDir: true}, nil
		}
		index := filepath.Join(full, "index.html")
		if fi, err := os.Stat(index); err == nil && !fi.IsDir() {
			return &Resolved{Path: index, Size: fi.Size()}, nil
		}
		return &Resolved{Path: full, IsDir: true}, nil
	}

	return &Resolved{Path: full, Size: info.Size()}, nil
}

// ContentType returns the MIME type for a file name, falling back to
// application/octet-stream when the extension is unknown.
func (s *Service) ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Listing renders an HTML directory listing for a directory without an
// index.html, in the spirit of the classic simple-server listing page.
func (s *Service) Listing(urlPath, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list directory: %w", err)
	}

	title := html.EscapeString(path.Clean("/" + urlPath))

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>Directory listing for %s</title>\n", title)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Directory listing for %s</h1>\n<hr>\n<ul>\n", title)

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		href := (&url.URL{Path: name}).EscapedPath()
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", href, html.EscapeString(name))
	}

	b.WriteString("</ul>\n<hr>\n</body>\n</html>\n")
	return b.String(), nil
}
