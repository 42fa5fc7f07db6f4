package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimiterEnforcesLimit(t *testing.T) {
	limiter := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("1.2.3.4")
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, retryAfter := limiter.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)
}

func TestFixedWindowLimiterTracksClientsIndependently(t *testing.T) {
	limiter := NewFixedWindowLimiter(1, time.Minute)

	allowed, _ := limiter.Allow("1.1.1.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.1.1.1")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("2.2.2.2")
	assert.True(t, allowed)
}

func TestFixedWindowLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewFixedWindowLimiter(1, 50*time.Millisecond)

	allowed, _ := limiter.Allow("1.2.3.4")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4")
	assert.False(t, allowed)

	time.Sleep(100 * time.Millisecond)

	allowed, _ = limiter.Allow("1.2.3.4")
	assert.True(t, allowed)
}
