package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
)

const (
	DefaultMaxEntries = 100
	DefaultTTL        = time.Hour
)

// Cache keeps analysis results keyed by content hash. Reads drop expired
// entries; inserts past the size cap evict the oldest.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	max     int
	ttl     time.Duration
}

type entry struct {
	result   *analysis.Result
	cachedAt time.Time
}

// New builds a cache. maxEntries <= 0 falls back to DefaultMaxEntries;
// ttl <= 0 disables expiry.
func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{entries: make(map[string]entry), max: maxEntries, ttl: ttl}
}

// Key hashes subtitle content together with whatever else distinguishes the
// run: language override, option fingerprints.
func Key(content string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(content))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the cached result for key. Expired entries read as misses
// and are removed.
func (c *Cache) Lookup(key string) (*analysis.Result, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.expired(e) {
		return e.result, true
	}

	c.mu.Lock()
	if cur, ok := c.entries[key]; ok && c.expired(cur) {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil, false
}

func (c *Cache) expired(e entry) bool {
	return c.ttl > 0 && time.Since(e.cachedAt) > c.ttl
}

// Store inserts a result, evicting the oldest entry once the cap is hit
func (c *Cache) Store(key string, res *analysis.Result) {
	if key == "" || res == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evictOldest()
	}
	c.entries[key] = entry{result: res, cachedAt: time.Now()}
}

// evictOldest drops the entry with the earliest timestamp. Caller holds the
// write lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.cachedAt.Before(oldest) {
			oldestKey, oldest = k, e.cachedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Remove drops one key
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops everything
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the entry count, expired entries included until they are read
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
