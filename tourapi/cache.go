package tourapi

import (
	"context"
	"sync"
	"time"
)

// Cache stores raw successful response bodies keyed by operation and
// query. Implementations must be safe for concurrent use. The client
// only reads and writes-if-absent; entries are never mutated in place.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Endpoint cache durations. Reference data changes rarely; listings and
// search results drift as the upstream dataset is edited.
const (
	TTLReference = time.Hour
	TTLListing   = 5 * time.Minute
)

// sweepThreshold bounds how large the memory cache grows before expired
// entries are swept out on write.
const sweepThreshold = 512

// MemoryCache is an in-process TTL cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
	}
}

// Get retrieves a live entry.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.body, true
}

// Set stores an entry, sweeping expired entries once the cache grows
// past sweepThreshold.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= sweepThreshold {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}

	c.entries[key] = memoryEntry{
		body:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
