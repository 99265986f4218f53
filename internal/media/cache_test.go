package media

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache(CacheConfig{TTL: time.Minute, MaxEntries: 10})

	_, ok := c.Get("https://example.com/a.png")
	assert.False(t, ok)

	c.Set("https://example.com/a.png", "image/png")
	ct, ok := c.Get("https://example.com/a.png")
	assert.True(t, ok)
	assert.Equal(t, "image/png", ct)

	stats := c.Stats()
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(CacheConfig{TTL: 10 * time.Millisecond, MaxEntries: 10})
	c.Set("a", "image/png")
	c.Set("b", "image/gif")

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Cleanup())
	assert.Equal(t, 0, c.Stats().TotalEntries)
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(CacheConfig{TTL: time.Minute, MaxEntries: 3})
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("url-%d", i), "image/png")
		time.Sleep(time.Millisecond)
	}
	// touch the oldest so url-1 becomes least recently used
	_, ok := c.Get("url-0")
	assert.True(t, ok)

	c.Set("url-3", "image/png")

	assert.Equal(t, 3, c.Stats().TotalEntries)
	_, ok = c.Get("url-1")
	assert.False(t, ok)
	_, ok = c.Get("url-0")
	assert.True(t, ok)
	_, ok = c.Get("url-3")
	assert.True(t, ok)
}

func TestNewCacheDefaults(t *testing.T) {
	c := NewCache(CacheConfig{})
	assert.Equal(t, DefaultCacheConfig.TTL, c.ttl)
	assert.Equal(t, DefaultCacheConfig.MaxEntries, c.maxEntries)
}
