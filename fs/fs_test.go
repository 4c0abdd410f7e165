package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Fetch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "definitions.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>glossary</html>"), 0644))

	got, err := fs.NewSource().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<html>glossary</html>", got)
}

func TestSource_Fetch_NotFound(t *testing.T) {
	t.Parallel()

	_, err := fs.NewSource().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	assert.Equal(t, marginalia.ENOTFOUND, marginalia.ErrorCode(err))
}

func TestSource_Fetch_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.NewSource().Fetch(ctx, "definitions.html")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriter_WritePage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pages", "essay.html")

	written, err := fs.NewWriter().WritePage(path, "<p>annotated</p>")
	require.NoError(t, err)
	assert.True(t, written, "missing parent directories are created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>annotated</p>", string(data))
}

func TestWriter_WritePage_SkipsUnchanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "essay.html")
	w := fs.NewWriter()

	written, err := w.WritePage(path, "<p>annotated</p>")
	require.NoError(t, err)
	require.True(t, written)

	written, err = w.WritePage(path, "<p>annotated</p>")
	require.NoError(t, err)
	assert.False(t, written, "identical content is not rewritten")

	written, err = w.WritePage(path, "<p>changed</p>")
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>changed</p>", string(data))
}

func TestWriter_WritePage_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "essay.html")

	_, err := fs.NewWriter().WritePage(path, "<p>annotated</p>")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "essay.html", entries[0].Name())
}
