package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurstAndRefill(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 3).WithClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d is within the burst", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")

	// Separate clients never share a bucket.
	assert.True(t, rl.Allow("10.0.0.2"))

	// At 1 req/sec, two seconds buys back two tokens.
	now = now.Add(2 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterRefillCapsAtBurst(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, 2).WithClock(func() time.Time { return now })

	assert.True(t, rl.Allow("10.0.0.1"))

	// A long idle stretch refills to the burst ceiling, not beyond.
	now = now.Add(time.Hour)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	assert.Equal(t, DefaultPublicRate, rl.rate)
	assert.Equal(t, float64(DefaultPublicBurst), rl.burst)
}

func TestRateLimiterPrunesStaleClients(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1).WithClock(func() time.Time { return now })

	rl.Allow("10.0.0.1")
	now = now.Add(bucketStaleAfter + time.Minute)
	rl.Allow("10.0.0.2")

	rl.mu.Lock()
	rl.prune(now)
	_, staleKept := rl.clients["10.0.0.1"]
	_, freshKept := rl.clients["10.0.0.2"]
	rl.mu.Unlock()

	assert.False(t, staleKept, "idle bucket should be dropped")
	assert.True(t, freshKept, "active bucket should survive pruning")
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	h := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set("X-Real-Ip", "10.0.0.9")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}
