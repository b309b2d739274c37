package rateLimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps an in-process token bucket per client key.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{buckets: make(map[string]*rate.Limiter)}
}

// Allow reports whether the key may make another request under a budget
// of limit requests per period. The bucket allows bursts up to limit.
func (rl *RateLimiter) Allow(key string, limit int, period time.Duration) bool {
	if limit <= 0 {
		return false
	}

	rl.mu.Lock()
	lim, ok := rl.buckets[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(period/time.Duration(limit)), limit)
		rl.buckets[key] = lim
	}
	rl.mu.Unlock()

	return lim.Allow()
}
