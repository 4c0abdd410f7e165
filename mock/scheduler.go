package mock

import (
	"sync"
	"time"

	"github.com/haslan/marginalia"
)

var _ marginalia.Scheduler = (*Scheduler)(nil)

// Scheduler is a manually fired implementation of marginalia.Scheduler.
// Scheduled callbacks run only when Fire is called, making debounce
// behavior deterministic in tests.
type Scheduler struct {
	mu      sync.Mutex
	pending []*scheduled
}

type scheduled struct {
	fn       func()
	canceled bool
}

// AfterFunc records the callback without running it.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) marginalia.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &scheduled{fn: fn}
	s.pending = append(s.pending, entry)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry.canceled = true
	}
}

// Fire runs every pending, non-canceled callback and clears the queue.
// Returns the number of callbacks run.
func (s *Scheduler) Fire() int {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	fired := 0
	for _, entry := range pending {
		if entry.canceled {
			continue
		}
		entry.fn()
		fired++
	}
	return fired
}

// Pending returns the number of queued, non-canceled callbacks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, entry := range s.pending {
		if !entry.canceled {
			n++
		}
	}
	return n
}
