package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gaswhisperer/gaswhisperer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryCacheGetOrUpdate(t *testing.T) {
	cache := newExpiryCache(time.Minute)
	now := time.Now()

	// no data by default
	val, ok := cache.getAt(now)
	assert.Nil(t, val)
	assert.False(t, ok)

	data := &types.RecentGasPoints{Source: types.PointSourceRpc}
	val, cached, err := cache.getOrUpdateAt(now, func() (*types.RecentGasPoints, error) {
		return data, nil
	})
	assert.NoError(t, err)
	assert.False(t, cached)
	assert.Same(t, data, val)

	// hit in cache
	val, cached, err = cache.getOrUpdateAt(now.Add(time.Second), func() (*types.RecentGasPoints, error) {
		return nil, errors.New("should not fetch")
	})
	assert.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, data, val)

	// expired
	val, ok = cache.getAt(now.Add(time.Minute + time.Nanosecond))
	assert.Nil(t, val)
	assert.False(t, ok)

	fooErr := errors.New("foo error")
	val, _, err = cache.getOrUpdateAt(now.Add(2*time.Minute), func() (*types.RecentGasPoints, error) {
		return nil, fooErr
	})
	assert.Nil(t, val)
	assert.Equal(t, fooErr, err)
}

func TestCachedSource(t *testing.T) {
	inner := newMockSource(types.PointSourceRpc, 1, 2, 3)

	now := time.Now()
	store := newMemoryWindowStore(3 * time.Second)
	store.timeNowFunc = func() time.Time { return now }

	src := NewCachedSource(inner, store)

	for i := 0; i < 3; i++ {
		points, err := src.Recent(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 3}, points.Recent.Values())
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	// windows are cached by size
	points, err := src.Recent(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, points.Recent.Values())
	assert.Equal(t, int32(2), inner.calls.Load())

	// refetch once expired
	now = now.Add(4 * time.Second)
	_, err = src.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestCachedSourceError(t *testing.T) {
	inner := newMockSource(types.PointSourceRpc, 1)
	inner.err = errors.New("rpc error")

	src := NewCachedSource(inner, newMemoryWindowStore(time.Minute))

	_, err := src.Recent(context.Background(), 1)
	assert.Error(t, err)

	// errors are never cached
	_, err = src.Recent(context.Background(), 1)
	assert.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestRedisWindowKey(t *testing.T) {
	assert.Equal(t, "gaswhisperer:recent:20", redisWindowKey(20))
}
