package repository

import "sync"

// defaultInitialRating matches the production ladder's starting value.
const defaultInitialRating = 500

// MemoryStore is the in-memory Store used by the batch fold. The rating
// fold is single-writer by contract; the mutex only guards concurrent
// reads from the metrics updater and reporting.
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[string]int64
	initial int64
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithInitialRating sets the rating assigned to unseen players.
func WithInitialRating(initial int64) Option {
	return func(s *MemoryStore) {
		s.initial = initial
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		ratings: make(map[string]int64),
		initial: defaultInitialRating,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rating returns the player's current rating, registering the player at
// the initial rating on first sight.
func (s *MemoryStore) Rating(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rating(name)
}

func (s *MemoryStore) rating(name string) int64 {
	if v, ok := s.ratings[name]; ok {
		return v
	}
	s.ratings[name] = s.initial
	return s.initial
}

// Apply adds delta to the player's rating and returns the before/after
// pair. Unseen players start from the initial rating.
func (s *MemoryStore) Apply(name string, delta int64) (before, after int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = s.rating(name)
	after = before + delta
	s.ratings[name] = after
	return before, after
}

// Snapshot returns a copy of every tracked rating.
func (s *MemoryStore) Snapshot() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.ratings))
	for name, v := range s.ratings {
		out[name] = v
	}
	return out
}

// Count returns the number of players tracked.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratings)
}
