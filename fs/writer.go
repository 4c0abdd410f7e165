package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Writer writes annotated pages back to the site tree. Writes are atomic
// (temp file + rename) and unchanged pages are skipped, so re-running the
// annotator over an already annotated site touches nothing.
type Writer struct{}

// NewWriter creates a page writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WritePage writes content to path. Returns true when the file was
// written, false when the existing content already matched.
func (w *Writer) WritePage(path string, content string) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64String(content) {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(dir, ".marginalia-*")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false, err
	}
	return true, nil
}
