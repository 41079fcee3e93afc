// Package service provides the decrypted-content cache and publisher address resolution.
package service

import (
	"sync"
	"time"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
)

// DefaultCacheTTL is how long decrypted content stays cached.
const DefaultCacheTTL = 30 * time.Minute

// DecryptionCache holds decrypted articles per reader for a fixed TTL.
type DecryptionCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]contentDomain.CacheEntry
}

// NewDecryptionCache creates an empty cache. A non-positive ttl uses DefaultCacheTTL and a
// nil clock uses time.Now.
func NewDecryptionCache(ttl time.Duration, now func() time.Time) *DecryptionCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &DecryptionCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]contentDomain.CacheEntry),
	}
}

// Get returns the entry for key if it has not expired. Expired entries are removed.
func (c *DecryptionCache) Get(key string) (*contentDomain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.expired(entry, c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return &entry, true
}

// Set stores entry under key, stamped with the current time, and drops expired entries.
func (c *DecryptionCache) Set(key string, entry contentDomain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entry.Timestamp = now
	entry.ReaderAddress = cryptoDomain.NormalizeAddress(entry.ReaderAddress)
	c.entries[key] = entry

	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
		}
	}
}

// Clear drops every entry.
func (c *DecryptionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// EvictReader drops every entry cached for the reader and returns how many were removed.
func (c *DecryptionCache) EvictReader(readerAddress string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	reader := cryptoDomain.NormalizeAddress(readerAddress)
	removed := 0
	for k, e := range c.entries {
		if e.ReaderAddress == reader {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, expired ones included.
func (c *DecryptionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *DecryptionCache) expired(entry contentDomain.CacheEntry, now time.Time) bool {
	return now.Sub(entry.Timestamp) > c.ttl
}
