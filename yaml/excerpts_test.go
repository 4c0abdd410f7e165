package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excerpts.yaml")
	store := yaml.NewStore()

	table := marginalia.ExcerptTable{
		"pages/about.html":         {Title: "About", Text: "Who writes here."},
		"pages/writing/essay.html": {Title: "An Essay", Text: "Opening lines."},
	}
	require.NoError(t, store.SaveExcerpts(path, table))

	got, err := store.LoadExcerpts(path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestStore_LoadExcerpts_MissingFile(t *testing.T) {
	t.Parallel()

	got, err := yaml.NewStore().LoadExcerpts(filepath.Join(t.TempDir(), "excerpts.yaml"))
	require.NoError(t, err, "a missing table degrades popups to glossary-only previews")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_LoadExcerpts_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excerpts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0644))

	_, err := yaml.NewStore().LoadExcerpts(path)
	assert.Equal(t, marginalia.EINVALID, marginalia.ErrorCode(err))
}
