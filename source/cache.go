package source

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/gaswhisperer/gaswhisperer/util/metrics"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type fetchFunc func() (*types.RecentGasPoints, error)

// windowStore caches gas point windows by window size.
type windowStore interface {
	// getOrUpdate returns the cached window if not expired, otherwise fetches and caches
	// the window by `fetch`. Returns true if hit in cache.
	getOrUpdate(ctx context.Context, count int, fetch fetchFunc) (*types.RecentGasPoints, bool, error)
}

// CachedSource caches gas point windows of the underlying source for a short while,
// so as to avoid requesting fullnode for every API call.
type CachedSource struct {
	inner Source
	store windowStore
}

func NewCachedSource(inner Source, store windowStore) *CachedSource {
	return &CachedSource{inner: inner, store: store}
}

// Recent implements the `Source` interface.
func (s *CachedSource) Recent(ctx context.Context, count int) (*types.RecentGasPoints, error) {
	points, hit, err := s.store.getOrUpdate(ctx, count, func() (*types.RecentGasPoints, error) {
		return s.inner.Recent(ctx, count)
	})

	if err == nil {
		metrics.Registry.Source.CacheHit(hit).Mark(1)
	}

	return points, err
}

// for atomic load/store in cache.
type cacheValue struct {
	value    *types.RecentGasPoints
	expireAt time.Time
}

// expiryCache is used to cache window with specified expiration time.
type expiryCache struct {
	value   atomic.Value
	timeout time.Duration
	mu      sync.Mutex
}

func newExpiryCache(timeout time.Duration) *expiryCache {
	return &expiryCache{timeout: timeout}
}

func (cache *expiryCache) getAt(time time.Time) (*types.RecentGasPoints, bool) {
	value := cache.value.Load()
	if value == nil {
		return nil, false
	}

	val := value.(cacheValue)
	if val.expireAt.Before(time) {
		return nil, false
	}

	return val.value, true
}

func (cache *expiryCache) getOrUpdateAt(time time.Time, fetch fetchFunc) (*types.RecentGasPoints, bool, error) {
	// cache value not expired
	if val, ok := cache.getAt(time); ok {
		return val, true, nil
	}

	// otherwise, query from fullnode and cache
	cache.mu.Lock()
	defer cache.mu.Unlock()

	// double check for concurrency
	if val, ok := cache.getAt(time); ok {
		return val, true, nil
	}

	val, err := fetch()
	if err != nil {
		return nil, false, err
	}

	cache.value.Store(cacheValue{
		value:    val,
		expireAt: time.Add(cache.timeout),
	})

	return val, false, nil
}

// memoryWindowStore caches windows in process.
type memoryWindowStore struct {
	caches  sync.Map // window size => *expiryCache
	timeout time.Duration

	// custom `time.Now` function, which could be used for testing
	timeNowFunc func() time.Time
}

func newMemoryWindowStore(timeout time.Duration) *memoryWindowStore {
	return &memoryWindowStore{timeout: timeout, timeNowFunc: time.Now}
}

func (s *memoryWindowStore) getOrUpdate(
	ctx context.Context, count int, fetch fetchFunc,
) (*types.RecentGasPoints, bool, error) {
	val, ok := s.caches.Load(count)
	if !ok {
		val, _ = s.caches.LoadOrStore(count, newExpiryCache(s.timeout))
	}

	return val.(*expiryCache).getOrUpdateAt(s.timeNowFunc(), fetch)
}

// redisWindowStore caches JSON encoded windows in redis, so that windows could be shared
// among multiple service instances.
type redisWindowStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisWindowStore(client *redis.Client, ttl time.Duration) *redisWindowStore {
	return &redisWindowStore{client: client, ttl: ttl}
}

func redisWindowKey(count int) string {
	return fmt.Sprintf("gaswhisperer:recent:%v", count)
}

func (s *redisWindowStore) getOrUpdate(
	ctx context.Context, count int, fetch fetchFunc,
) (*types.RecentGasPoints, bool, error) {
	key := redisWindowKey(count)
	logger := logrus.WithField("key", key)

	data, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var points types.RecentGasPoints
		if err = json.Unmarshal(data, &points); err == nil {
			return &points, true, nil
		}

		logger.WithError(err).Warn("Failed to decode gas window from redis cache")
	} else if err != redis.Nil {
		logger.WithError(err).Warn("Failed to get gas window from redis cache")
	}

	points, err := fetch()
	if err != nil {
		return nil, false, err
	}

	if data, err = json.Marshal(points); err != nil {
		logger.WithError(err).Warn("Failed to encode gas window for redis cache")
		return points, false, nil
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		logger.WithError(err).Warn("Failed to set gas window into redis cache")
	}

	return points, false, nil
}
