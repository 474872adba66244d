package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a process-local Store, used in tests and when no backend is configured.
type MemoryStore struct {
	store map[string]memoryEntry
	mu    sync.RWMutex
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (c *MemoryStore) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if expiration > 0 {
		entry.expiresAt = c.now().Add(expiration)
	}
	c.store[key] = entry
	return nil
}

func (c *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()
	if !ok || c.expired(entry) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), entry.value...), nil
}

func (c *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.store[key]
	return ok && !c.expired(entry), nil
}

func (c *MemoryStore) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// GetAll returns a snapshot of every live entry.
func (c *MemoryStore) GetAll() map[string][]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string][]byte)
	for k, v := range c.store {
		if !c.expired(v) {
			result[k] = append([]byte(nil), v.value...)
		}
	}
	return result
}

func (c *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}
