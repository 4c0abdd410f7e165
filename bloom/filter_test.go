package bloom_test

import (
	"fmt"
	"testing"

	"github.com/haslan/marginalia/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.org/a.html"))
	f.Add("https://example.org/a.html")
	assert.True(t, f.Test("https://example.org/a.html"))
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := 0; i < 500; i++ {
		f.Add(fmt.Sprintf("https://example.org/page-%d.html", i))
	}
	for i := 0; i < 500; i++ {
		assert.True(t, f.Test(fmt.Sprintf("https://example.org/page-%d.html", i)))
	}
}
