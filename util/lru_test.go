package util_test

import (
	"sync"
	"testing"
	"time"

	"github.com/gaswhisperer/gaswhisperer/util"
	"github.com/stretchr/testify/assert"
)

// mockTime is used to simulate time progression in tests.
type mockTime struct {
	mu          sync.Mutex
	currentTime time.Time
}

func (m *mockTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

func (m *mockTime) Add(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

func TestExpirableLruCacheAddAndGet(t *testing.T) {
	cache := util.NewExpirableLruCache[string, string](5, time.Minute)
	cache.Add("key1", "value1")

	value, found := cache.Get("key1")
	assert.True(t, found)
	assert.Equal(t, "value1", value)

	value, found = cache.Get("key2")
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestExpirableLruCacheExpiration(t *testing.T) {
	mt := &mockTime{currentTime: time.Now()}
	cache := util.NewExpirableLruCache[uint64, int](5, 50*time.Millisecond, mt.Now)
	cache.Add(1, 100)

	mt.Add(40 * time.Millisecond)
	value, found := cache.Get(1)
	assert.True(t, found)
	assert.Equal(t, 100, value)

	// Simulate time passing beyond the TTL
	mt.Add(20 * time.Millisecond)
	value, found = cache.Get(1)
	assert.False(t, found)
	assert.Zero(t, value)

	// expired entry purged
	assert.Equal(t, 0, cache.Len())
}

func TestExpirableLruCacheEviction(t *testing.T) {
	cache := util.NewExpirableLruCache[string, string](3, time.Minute)
	cache.Add("key1", "value1")
	cache.Add("key2", "value2")
	cache.Add("key3", "value3")

	// Access key1 and key2 to make key3 the least recently used
	cache.Get("key1")
	cache.Get("key2")

	// Add a new key to trigger eviction
	assert.True(t, cache.Add("key4", "value4"))

	_, found := cache.Get("key3")
	assert.False(t, found)

	for _, k := range []string{"key1", "key2", "key4"} {
		_, found := cache.Get(k)
		assert.True(t, found, k)
	}
}
