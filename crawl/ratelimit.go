package crawl

import (
	"context"
	"sync"

	"github.com/haslan/marginalia"
	"golang.org/x/time/rate"
)

var _ marginalia.HostLimiter = (*HostLimiter)(nil)

// HostLimiter rate-limits site fetches per host using token buckets. One
// limiter per host, burst of 1, so the excerpt builder stays polite to the
// site it annotates.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host. Returns
// an error if the context is canceled first.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
