package util

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// expirableValue is used to hold value with expiration
type expirableValue[V any] struct {
	value     V
	expiresAt time.Time
}

// ExpirableLruCache naive implementation of LRU cache with fixed TTL expiration duration.
// This cache uses a lazy eviction policy, by which the expired entry will be purged when
// it's being looked up.
type ExpirableLruCache[K comparable, V any] struct {
	lru *lru.Cache
	mu  sync.Mutex
	ttl time.Duration

	// custom `time.Now` function, which could be used for testing
	timeNowFunc func() time.Time
}

func NewExpirableLruCache[K comparable, V any](
	size int, ttl time.Duration, timeNowFunc ...func() time.Time,
) *ExpirableLruCache[K, V] {
	nowFunc := time.Now
	if len(timeNowFunc) > 0 {
		nowFunc = timeNowFunc[0]
	}

	cache, _ := lru.New(max(size, 1))
	return &ExpirableLruCache[K, V]{lru: cache, ttl: ttl, timeNowFunc: nowFunc}
}

// Add adds a value to the cache. Returns true if an eviction occurred.
func (c *ExpirableLruCache[K, V]) Add(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ev := &expirableValue[V]{
		value:     value,
		expiresAt: c.timeNowFunc().Add(c.ttl),
	}

	return c.lru.Add(key, ev)
}

// Get looks up a key's value from the cache. Will purge the entry and return zero value
// if the entry expired.
func (c *ExpirableLruCache[K, V]) Get(key K) (v V, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cv, ok := c.lru.Get(key)
	if !ok { // not found
		return v, false
	}

	ev := cv.(*expirableValue[V])
	if ev.expiresAt.Before(c.timeNowFunc()) { // expired
		c.lru.Remove(key)
		return v, false
	}

	return ev.value, true
}

// Len returns the number of entries in cache, including the expired ones not purged yet.
func (c *ExpirableLruCache[K, V]) Len() int {
	return c.lru.Len()
}
