// Package fs provides file-based implementations for static-site builds:
// a glossary source reading the local site tree and an atomic page writer.
package fs

import (
	"context"
	"os"

	"github.com/haslan/marginalia"
)

// Ensure Source implements marginalia.GlossaryFetcher at compile time.
var _ marginalia.GlossaryFetcher = (*Source)(nil)

// Source reads the glossary document from the local site tree, for offline
// static builds where the site has not been deployed yet.
type Source struct{}

// NewSource creates a file-based glossary source.
func NewSource() *Source {
	return &Source{}
}

// Fetch reads the glossary document at the given path.
func (s *Source) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			return "", marginalia.Errorf(marginalia.ENOTFOUND, "glossary not found: %s", location)
		}
		return "", marginalia.Errorf(marginalia.EUNAVAILABLE, "read %s: %v", location, err)
	}
	return string(data), nil
}
