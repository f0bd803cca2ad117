package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/kv"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero = never
}

// Store is an in-process kv.Store. Expired keys are dropped lazily on read.
// It backs local development and tests.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

var _ kv.Store = (*Store)(nil)

// New creates an empty memory store
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// WithClock replaces the time source (tests only).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	now := s.now()
	s.mu.RUnlock()

	if !ok {
		return nil, kv.ErrNotFound
	}
	if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
		s.mu.Lock()
		// re-check: a concurrent Put may have refreshed the key
		if cur, ok := s.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, kv.ErrNotFound
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

// Len returns the number of stored keys, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
