package rate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIpLimiterAllow(t *testing.T) {
	limiter := NewIpLimiter(1, 2)
	now := time.Now()

	// burst
	assert.True(t, limiter.allowAt("10.0.0.1", 1, now))
	assert.True(t, limiter.allowAt("10.0.0.1", 1, now))
	assert.False(t, limiter.allowAt("10.0.0.1", 1, now))

	// limited per IP
	assert.True(t, limiter.allowAt("10.0.0.2", 2, now))

	// refilled
	assert.True(t, limiter.allowAt("10.0.0.1", 1, now.Add(time.Second)))
}

func TestIpLimiterGC(t *testing.T) {
	limiter := NewIpLimiter(1, 1)
	now := time.Now()

	limiter.allowAt("10.0.0.1", 1, now)
	limiter.allowAt("10.0.0.2", 1, now.Add(time.Minute))
	assert.Equal(t, 2, limiter.numVisitors())

	limiter.gcAt(time.Minute, now.Add(90*time.Second))
	assert.Equal(t, 1, limiter.numVisitors())

	limiter.gcAt(time.Minute, now.Add(3*time.Minute))
	assert.Equal(t, 0, limiter.numVisitors())
}
