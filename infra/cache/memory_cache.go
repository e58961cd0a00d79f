package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// MemoryCache implements cache.EntryCache using in-memory storage.
type MemoryCache struct {
	entries map[uuid.UUID]*cacheEntry
	mu      sync.RWMutex
	done    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	entry     ledger.Entry
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[uuid.UUID]*cacheEntry),
		done:    make(chan struct{}),
	}

	// Start cleanup goroutine
	go c.cleanup(5 * time.Minute)

	return c
}

// Get retrieves an entry from cache.
func (c *MemoryCache) Get(_ context.Context, id uuid.UUID) (*ledger.Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.entries[id]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, nil
	}
	out := item.entry
	return &out, nil
}

// Set stores an entry in cache with TTL.
func (c *MemoryCache) Set(_ context.Context, e *ledger.Entry, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[e.ID] = &cacheEntry{
		entry:     *e,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes an entry from cache.
func (c *MemoryCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
	return nil
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

// cleanup removes expired entries from cache.
func (c *MemoryCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, item := range c.entries {
				if now.After(item.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
