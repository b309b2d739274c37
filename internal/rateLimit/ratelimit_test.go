package rateLimit

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter()

	for i := 0; i < 5; i++ {
		if !rl.Allow("ip:1.2.3.4", 5, time.Minute) {
			t.Fatalf("expected request %d within burst to pass", i)
		}
	}
	if rl.Allow("ip:1.2.3.4", 5, time.Minute) {
		t.Fatalf("expected request over budget to be rejected")
	}

	// Another key has its own bucket.
	if !rl.Allow("ip:5.6.7.8", 5, time.Minute) {
		t.Fatalf("expected separate key to pass")
	}
}

func TestRateLimiter_Allow_NonPositiveLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter()

	if rl.Allow("ip:1.2.3.4", 0, time.Minute) {
		t.Fatalf("expected zero budget to reject")
	}
	if rl.Allow("ip:1.2.3.4", -1, time.Minute) {
		t.Fatalf("expected negative budget to reject")
	}
}
