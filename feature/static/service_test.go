package static

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func setupRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.wasm"), []byte{0x00, 0x61, 0x73, 0x6d}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "game.data"), []byte("blob"), 0o644))

	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "index.html"), []byte("<h1>docs</h1>"), 0o644))

	require.NoError(t, os.Mkdir(filepath.Join(root, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "a & b.txt"), []byte("x"), 0o644))

	// A file next to the root that traversal must never reach.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(root), "outside.txt"), []byte("secret"), 0o644))

	return root
}

func TestResolveFile(t *testing.T) {
	root := setupRoot(t)
	svc := NewService(root, zap.NewNop())

	res, err := svc.Resolve("/hello.txt")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hello.txt"), res.Path)
	assert.Equal(t, int64(5), res.Size)
	assert.False(t, res.IsDir)
}

func TestResolveMissing(t *testing.T) {
	root := setupRoot(t)
	svc := NewService(root, zap.NewNop())

	_, err := svc.Resolve("/nope.txt")

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolveBlocksTraversal(t *testing.T) {
	root := setupRoot(t)
	svc := NewService(root, zap.NewNop())

	// outside.txt exists one level above the root; a cleaned path must not
	// reach it.
	_, err := svc.Resolve("/../outside.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = svc.Resolve("/docs/../../outside.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolveDirWithIndex(t *testing.T) {
	root := setupRoot(t)
	svc := NewService(root, zap.NewNop())

	res, err := svc.Resolve("/docs/")

	require.NoError(t, err)
	assert.False(t, res.IsDir)
	assert.Equal(t, filepath.Join(root, "docs", "index.html"), res.Path)
}

func TestResolveDirWithIndexNoTrailingSlash(t *testing.T) {
	root := setupRoot(t)
	svc := NewService(root, zap.NewNop())

	// Without the trailing slash the directory must be reported as such,
	// not silently swapped for its index.html.
	res, err := svc.Resolve("/docs")

	require.NoError(t, err)
	assert.True(t, res.IsDir)
	assert.Equal(t, filepath.Join(root, "docs"), res.Path)
}

func TestResolveDirWithoutIndex(t *testing.T) {
	root := setupRoot(t)
	svc := NewService(root, zap.NewNop())

	res, err := svc.Resolve("/assets/")

	require.NoError(t, err)
	assert.True(t, res.IsDir)
	assert.Equal(t, filepath.Join(root, "assets"), res.Path)
}

func TestContentType(t *testing.T) {
	svc := NewService(t.TempDir(), zap.NewNop())

	tests := []struct {
		name string
		file string
		want string
	}{
		{"Wasm", "app.wasm", "application/wasm"},
		{"Data", "game.data", "application/octet-stream"},
		{"HTML", "index.html", "text/html"},
		{"Unknown", "mystery.zz9", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// MIME types may carry a charset parameter depending on the OS table
			assert.Contains(t, svc.ContentType(tt.file), tt.want)
		})
	}
}

func TestListing(t *testing.T) {
	root := setupRoot(t)
	svc := NewService(root, zap.NewNop())

	page, err := svc.Listing("/", root)

	require.NoError(t, err)
	assert.Contains(t, page, "Directory listing for /")
	assert.Contains(t, page, "hello.txt")
	assert.Contains(t, page, "docs/")
	// HTML-sensitive names are escaped
	assert.Contains(t, page, "a &amp; b.txt")
	assert.NotContains(t, page, ">a & b.txt<")
}
