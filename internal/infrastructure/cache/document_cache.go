// Package cache provides in-process caching backed by go-cache.
package cache

import (
	"context"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is the default lifetime of a cached document.
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired documents are evicted.
const DefaultCleanupInterval = 1 * time.Hour

// DocumentCache stores rendered documents by key.
// Entries never need invalidation because issued invoices are immutable;
// expiry only bounds memory.
type DocumentCache struct {
	cache *goCache.Cache
	ttl   time.Duration
}

// NewDocumentCache creates a cache whose entries live for ttl.
// A non-positive ttl selects DefaultExpiration.
func NewDocumentCache(ttl time.Duration) *DocumentCache {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &DocumentCache{
		cache: goCache.New(ttl, DefaultCleanupInterval),
		ttl:   ttl,
	}
}

// Get returns the cached document for key.
func (c *DocumentCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set stores a document under key with the default lifetime.
func (c *DocumentCache) Set(_ context.Context, key string, doc []byte) {
	c.cache.Set(key, doc, goCache.DefaultExpiration)
}

// Len returns the number of cached documents, including expired ones not yet evicted.
func (c *DocumentCache) Len() int {
	return c.cache.ItemCount()
}

// Flush removes every document.
func (c *DocumentCache) Flush(_ context.Context) {
	c.cache.Flush()
}
