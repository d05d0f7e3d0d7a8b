package cache

import (
	"context"
	"sync"
	"time"

	"assessment-service/internal/models"
)

type memoryEntry struct {
	result    models.AssessmentResult
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache used when Redis is not configured
// (local development and tests). It periodically rebuilds its map to
// reclaim memory from expired entries.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stop    chan struct{}
	once    sync.Once
}

func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *MemoryCache) Get(_ context.Context, fingerprint string) (*models.AssessmentResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[fingerprint]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	result := entry.result
	return &result, true
}

func (c *MemoryCache) Set(_ context.Context, fingerprint string, result *models.AssessmentResult, ttl time.Duration) {
	if result == nil {
		return
	}
	c.mu.Lock()
	c.entries[fingerprint] = memoryEntry{
		result:    *result,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			fresh := make(map[string]memoryEntry, len(c.entries)/2)
			for k, v := range c.entries {
				if now.Before(v.expiresAt) {
					fresh[k] = v
				}
			}
			c.entries = fresh
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
