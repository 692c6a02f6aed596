package middleware

import (
	"math"
	"net/http"
	"sync"
	"time"
)

// Defaults tuned for the public booking and contact endpoints: a burst
// absorbs a normal reserve-then-confirm exchange, the steady rate stops
// form-spam loops.
const (
	DefaultPublicRate  = 2.0
	DefaultPublicBurst = 10
)

// Buckets idle longer than this are forgotten; a returning client simply
// starts with a full bucket again.
const bucketStaleAfter = 10 * time.Minute

// maxTrackedClients bounds the bucket map. When it fills up, stale
// entries are pruned before admitting a new client.
const maxTrackedClients = 4096

type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimiter applies a per-client token bucket. Pruning happens inline
// on Allow, so there is no background goroutine to stop.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*bucket
	rate    float64
	burst   float64
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing rate requests/sec with the
// given burst per client key. Non-positive values fall back to the
// public-endpoint defaults.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	if rate <= 0 {
		rate = DefaultPublicRate
	}
	if burst <= 0 {
		burst = DefaultPublicBurst
	}
	return &RateLimiter{
		clients: make(map[string]*bucket),
		rate:    rate,
		burst:   float64(burst),
		now:     time.Now,
	}
}

// WithClock overrides the limiter clock. Test hook.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// Allow reports whether the client identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.clients[key]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			rl.prune(now)
		}
		b = &bucket{tokens: rl.burst, last: now}
		rl.clients[key] = b
	}

	b.tokens = math.Min(rl.burst, b.tokens+now.Sub(b.last).Seconds()*rl.rate)
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets idle past bucketStaleAfter. Caller holds the lock.
func (rl *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-bucketStaleAfter)
	for key, b := range rl.clients {
		if b.last.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// Handler wraps next with the rate limit, keying on the client IP and
// answering over-limit requests with 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit returns a middleware with its own limiter instance.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	return NewRateLimiter(rate, burst).Handler
}

// clientIP prefers the X-Real-Ip header populated by chi's RealIP
// middleware, falling back to the raw remote address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
