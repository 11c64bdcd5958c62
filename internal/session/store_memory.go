package session

import (
	"context"
	"sync"
	"time"

	"backoffice/pkg/platform/sentinel"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryStore keeps session keys in process. Suitable for a single instance
// and for tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[Key]memoryEntry
	now      func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]map[Key]memoryEntry),
		now:      time.Now,
	}
}

func (s *InMemoryStore) Set(_ context.Context, sid string, key Key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.sessions[sid]
	if !ok {
		entries = make(map[Key]memoryEntry, len(Keys()))
		s.sessions[sid] = entries
	}
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	entries[key] = entry
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, sid string, key Key) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sid][key]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		return "", sentinel.ErrNotFound
	}
	return entry.value, nil
}

func (s *InMemoryStore) Remove(_ context.Context, sid string, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[sid], key)
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
