package cache

import (
	"crypto/md5" //nolint:gosec // Key hashing only, not used for security
	"encoding/hex"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/capacitymarket/capacity-checker/internal/infrastructure/config"
)

// Cache is a process-local, bounded, TTL-expiring cache.
//
// Entries are evicted when they expire or when the entry count exceeds the
// configured capacity (oldest first). All methods are safe for concurrent
// use from multiple goroutines.
type Cache struct {
	cache      *ttlcache.Cache[string, []byte]
	ttl        time.Duration
	maxEntries int
}

// Stats reports cache usage for the admin endpoints.
type Stats struct {
	Entries    int           `json:"entries"`
	MaxEntries int           `json:"max_entries"`
	TTL        time.Duration `json:"ttl_seconds"`
	Hits       uint64        `json:"hits"`
	Misses     uint64        `json:"misses"`
	Insertions uint64        `json:"insertions"`
	Evictions  uint64        `json:"evictions"`
}

// New creates a cache with the configured TTL and entry bound.
//
// A background goroutine removes expired entries; call Stop() on shutdown.
func New(cfg config.CacheConfig) *Cache {
	ttl := time.Duration(cfg.TTL) * time.Second

	c := ttlcache.New(
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithCapacity[string, []byte](uint64(cfg.MaxEntries)),
	)
	go c.Start()

	return &Cache{
		cache:      c,
		ttl:        ttl,
		maxEntries: cfg.MaxEntries,
	}
}

// Get returns the cached value for key, or (nil, false) if absent or expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	item := c.cache.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set stores a value under key with the default TTL.
func (c *Cache) Set(key string, value []byte) {
	c.cache.Set(key, value, ttlcache.DefaultTTL)
}

// SetWithTTL stores a value under key with an explicit TTL.
func (c *Cache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes a single entry.
func (c *Cache) Delete(key string) {
	c.cache.Delete(key)
}

// Flush removes all entries.
func (c *Cache) Flush() {
	c.cache.DeleteAll()
}

// Len returns the current number of entries.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Stats returns a snapshot of cache usage.
func (c *Cache) Stats() Stats {
	m := c.cache.Metrics()
	return Stats{
		Entries:    c.cache.Len(),
		MaxEntries: c.maxEntries,
		TTL:        c.ttl / time.Second,
		Hits:       m.Hits,
		Misses:     m.Misses,
		Insertions: m.Insertions,
		Evictions:  m.Evictions,
	}
}

// Stop shuts down the background expiry goroutine.
func (c *Cache) Stop() {
	c.cache.Stop()
}

// Key builds a consistent, backend-safe cache key from a prefix and an
// identifier. Identifiers containing spaces or non-alphanumeric characters
// are hashed so keys stay valid for any cache backend; simple identifiers
// are lowercased.
func Key(prefix, identifier string) string {
	if identifier == "" {
		return prefix + "_"
	}

	safe := true
	for _, r := range identifier {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			safe = false
			break
		}
	}

	if !safe {
		sum := md5.Sum([]byte(identifier)) //nolint:gosec // Key hashing only
		return prefix + "_" + hex.EncodeToString(sum[:])
	}

	return prefix + "_" + lower(identifier)
}

// lower is an ASCII-only lowercase; identifiers reaching it are alphanumeric.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
