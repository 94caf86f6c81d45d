// Package cache provides caching utilities for schema inference.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// FormatCache provides thread-safe LRU caching of string format detection
// results, keyed by the raw string value. An empty result is cached too, so
// repeated non-matching values skip the recognizers as well.
type FormatCache struct {
	cache *lru.Cache[string, string]
}

// NewFormatCache creates a new LRU cache with the specified maximum number of items.
func NewFormatCache(maxItems int) (*FormatCache, error) {
	c, err := lru.New[string, string](maxItems)
	if err != nil {
		return nil, err
	}
	return &FormatCache{cache: c}, nil
}

// Get retrieves a cached format for value.
// Returns the format and true if found, "" and false otherwise.
func (c *FormatCache) Get(value string) (string, bool) {
	return c.cache.Get(value)
}

// Put adds or updates the detected format for value.
func (c *FormatCache) Put(value, format string) {
	c.cache.Add(value, format)
}

// Len returns the current number of items in the cache.
func (c *FormatCache) Len() int {
	return c.cache.Len()
}
