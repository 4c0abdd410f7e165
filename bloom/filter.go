// Package bloom provides link deduplication for the excerpt builder's
// page walk using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for visited-link deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected links with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add marks a link as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the link might have been seen. False positives are
// possible; false negatives are not, so a page is never walked twice.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}
