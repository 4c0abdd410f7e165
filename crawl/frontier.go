// Package crawl builds the internal page excerpts table by walking the
// site's pages.
package crawl

import (
	"strings"
	"sync"

	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/bloom"
)

// Compile-time interface verification.
var _ marginalia.LinkFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO link queue with Bloom filter deduplication.
// It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []string
}

// NewFrontier creates a Frontier sized for n expected links with the given
// false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

// Push queues a URL. Fragments are stripped first, so URLs differing only
// by fragment are duplicates. Returns false if the URL has been seen.
func (f *Frontier) Push(url string) bool {
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)
	f.queue = append(f.queue, url)
	return true
}

// Pop returns the next queued URL in insertion order.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
