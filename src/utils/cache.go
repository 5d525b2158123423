package utils

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// KeyedCache is an expiry-checked key/value map. Entries past their TTL are
// treated as absent; there is no background sweeper and no eviction under
// memory pressure.
type KeyedCache[T any] struct {
	mutex   sync.RWMutex
	entries map[string]cacheEntry[T]
}

// NewKeyedCache initializes an empty cache.
func NewKeyedCache[T any]() *KeyedCache[T] {
	return &KeyedCache[T]{
		entries: map[string]cacheEntry[T]{},
	}
}

// Set stores a value under key with an expiration relative to now.
func (c *KeyedCache[T]) Set(key string, value T, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get retrieves the value under key if present and not expired.
func (c *KeyedCache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Delete removes the entry under key, if any.
func (c *KeyedCache[T]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

// Clear drops every entry.
func (c *KeyedCache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = map[string]cacheEntry[T]{}
}

// Len reports the number of stored entries, expired ones included.
func (c *KeyedCache[T]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}
