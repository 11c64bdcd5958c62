package clientstatus

import (
	"context"
	"sync"
	"time"

	"backoffice/internal/verification"
)

type memoryEntry struct {
	status    verification.Status
	expiresAt time.Time
}

type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[int64]memoryEntry
	now     func() time.Time
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[int64]memoryEntry), now: time.Now}
}

func (c *InMemoryCache) Get(_ context.Context, clientID int64) (verification.Status, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[clientID]
	if !ok || !c.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.status, true, nil
}

func (c *InMemoryCache) Set(_ context.Context, clientID int64, status verification.Status, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[clientID] = memoryEntry{status: status, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, clientID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, clientID)
	return nil
}
