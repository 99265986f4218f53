package media

import (
	"sort"
	"sync"
	"time"
)

type cacheEntry struct {
	contentType string
	expiresAt   time.Time
	accessedAt  time.Time
}

// Cache remembers the content types of remote resources so repeated cards
// with the same logo don't issue a HEAD request each time. Entries expire
// lazily on access; the least recently used ones are evicted when the cache
// grows past MaxEntries.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*cacheEntry
	ttl        time.Duration
	maxEntries int

	hits   int64
	misses int64
}

// CacheConfig holds configuration for the content type cache
type CacheConfig struct {
	TTL        time.Duration // How long entries stay valid
	MaxEntries int           // Maximum number of entries before eviction
}

// DefaultCacheConfig provides sensible defaults
var DefaultCacheConfig = CacheConfig{
	TTL:        15 * time.Minute,
	MaxEntries: 1000,
}

// CacheStats reports cache usage.
type CacheStats struct {
	TotalEntries int
	Hits         int64
	Misses       int64
}

// NewCache creates a new content type cache.
func NewCache(config CacheConfig) *Cache {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheConfig.TTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultCacheConfig.MaxEntries
	}
	return &Cache{
		entries:    make(map[string]*cacheEntry),
		ttl:        config.TTL,
		maxEntries: config.MaxEntries,
	}
}

// Get returns the cached content type for url if present and not expired.
func (c *Cache) Get(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	now := time.Now()
	if !ok || now.After(entry.expiresAt) {
		if ok {
			delete(c.entries, url)
		}
		c.misses++
		return "", false
	}
	entry.accessedAt = now
	c.hits++
	return entry.contentType, true
}

// Set stores the content type for url.
func (c *Cache) Set(url, contentType string) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[url] = &cacheEntry{
		contentType: contentType,
		expiresAt:   now.Add(c.ttl),
		accessedAt:  now,
	}
	if len(c.entries) > c.maxEntries {
		c.cleanup(now)
	}
}

// Cleanup removes expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := len(c.entries)
	c.cleanup(time.Now())
	return before - len(c.entries)
}

// cleanup removes expired entries, then the least recently accessed ones
// until the cache is within its limit. Callers hold the lock.
func (c *Cache) cleanup(now time.Time) {
	for url, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, url)
		}
	}
	if len(c.entries) <= c.maxEntries {
		return
	}

	urls := make([]string, 0, len(c.entries))
	for url := range c.entries {
		urls = append(urls, url)
	}
	sort.Slice(urls, func(i, j int) bool {
		return c.entries[urls[i]].accessedAt.Before(c.entries[urls[j]].accessedAt)
	})
	for _, url := range urls[:len(urls)-c.maxEntries] {
		delete(c.entries, url)
	}
}

// Stats returns current cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		TotalEntries: len(c.entries),
		Hits:         c.hits,
		Misses:       c.misses,
	}
}
