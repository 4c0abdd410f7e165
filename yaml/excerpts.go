// Package yaml persists the internal page excerpts table in the YAML
// format the site's templates consume.
package yaml

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/haslan/marginalia"
)

// Ensure Store implements marginalia.ExcerptStore at compile time.
var _ marginalia.ExcerptStore = (*Store)(nil)

// Store loads and saves excerpt tables as YAML files keyed by
// site-relative page path.
type Store struct{}

// NewStore creates an excerpt store.
func NewStore() *Store {
	return &Store{}
}

// LoadExcerpts reads an excerpts table. A missing file yields an empty
// (non-nil) table: popups then degrade to glossary-only previews.
func (s *Store) LoadExcerpts(path string) (marginalia.ExcerptTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return marginalia.ExcerptTable{}, nil
		}
		return nil, marginalia.Errorf(marginalia.EUNAVAILABLE, "read %s: %v", path, err)
	}

	table := marginalia.ExcerptTable{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, marginalia.Errorf(marginalia.EINVALID, "parse %s: %v", path, err)
	}
	return table, nil
}

// SaveExcerpts writes the table to path.
func (s *Store) SaveExcerpts(path string, table marginalia.ExcerptTable) error {
	data, err := yaml.Marshal(table)
	if err != nil {
		return marginalia.Errorf(marginalia.EINTERNAL, "marshal excerpts: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return marginalia.Errorf(marginalia.EUNAVAILABLE, "write %s: %v", path, err)
	}
	return nil
}
