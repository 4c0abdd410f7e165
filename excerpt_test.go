package marginalia_test

import (
	"testing"

	"github.com/haslan/marginalia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
	}{
		{"plain path", "pages/writing/essay.html", "pages/writing/essay.html"},
		{"fragment stripped", "pages/writing/essay.html#notes", "pages/writing/essay.html"},
		{"parent segments stripped", "../../pages/about.html", "pages/about.html"},
		{"current segment stripped", "./essay.html", "essay.html"},
		{"leading slash stripped", "/pages/about.html", "pages/about.html"},
		{"mixed prefixes", "../.././index.html#top", "index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, marginalia.NormalizePath(tt.href))
		})
	}
}

func TestExcerptTable_Lookup(t *testing.T) {
	t.Parallel()

	table := marginalia.ExcerptTable{
		"pages/writing/essay.html": {Title: "An Essay", Text: "Opening lines."},
	}

	t.Run("relative href from nested page", func(t *testing.T) {
		t.Parallel()

		e, ok := table.Lookup("../../pages/writing/essay.html#section-2")
		require.True(t, ok)
		assert.Equal(t, "An Essay", e.Title)
	})

	t.Run("unknown destination", func(t *testing.T) {
		t.Parallel()

		_, ok := table.Lookup("pages/missing.html")
		assert.False(t, ok)
	})
}
