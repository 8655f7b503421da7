// Package permcache caches flattened grant sets between permission lookups.
package permcache

import (
	"context"
	"sync"
	"time"

	"newsroom/internal/usecase"
)

type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[uint]memoryEntry
}

type memoryEntry struct {
	grants    []string
	expiresAt time.Time
	hasExpiry bool
}

func NewMemory() *Memory {
	return &Memory{now: time.Now, entries: make(map[uint]memoryEntry)}
}

func (c *Memory) Get(_ context.Context, userID uint) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}
	if entry.hasExpiry && c.now().After(entry.expiresAt) {
		delete(c.entries, userID)
		return nil, false, nil
	}
	grants := make([]string, len(entry.grants))
	copy(grants, entry.grants)
	return grants, true, nil
}

func (c *Memory) Put(_ context.Context, userID uint, grants []string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{grants: make([]string, len(grants))}
	copy(entry.grants, grants)
	if ttl > 0 {
		entry.hasExpiry = true
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[userID] = entry
	return nil
}

var _ usecase.PermissionCache = (*Memory)(nil)
