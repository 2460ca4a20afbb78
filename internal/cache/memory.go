package cache

import (
	"context"
	"sync"
	"time"

	"gamelength/internal/core"
	"gamelength/internal/titles"
)

type entry struct {
	value     *core.PlaytimeEstimate
	createdAt time.Time
}

// MemoryStore implements Store with an in-process map. Entry count is
// unbounded; process restarts are the implicit eviction mechanism.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewMemoryStore creates an in-memory store. A ttl of zero means DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached estimate for a raw title, or nil on a miss. An
// expired entry is evicted on access and reported as a miss.
func (s *MemoryStore) Get(_ context.Context, rawTitle string) (*core.PlaytimeEstimate, error) {
	key := titles.CacheKey(rawTitle)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.now().Sub(e.createdAt) >= s.ttl {
		delete(s.entries, key)
		return nil, nil
	}
	return e.value, nil
}

// Set stores the estimate for a raw title, unconditionally overwriting any
// prior entry.
func (s *MemoryStore) Set(_ context.Context, rawTitle string, value *core.PlaytimeEstimate) error {
	key := titles.CacheKey(rawTitle)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: value, createdAt: s.now()}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Len reports the current entry count (for tests and the health endpoint).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
