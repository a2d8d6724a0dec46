// Package ratelimit provides per-client token-bucket rate limiting for the
// HTTP API's generation endpoints.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a single token bucket. It starts full.
type bucket struct {
	tokens     float64
	lastUpdate time.Time
	mu         sync.Mutex
}

// take refills the bucket for the time elapsed since the last call, then
// tries to consume one token. It returns whether a token was taken, the whole
// tokens left, and the seconds until the bucket is full again (when allowed)
// or until the next token (when refused).
func (b *bucket) take(now time.Time, rate float64, burst int) (bool, int, int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	maxTokens := float64(burst)
	b.tokens += now.Sub(b.lastUpdate).Seconds() * rate
	if b.tokens > maxTokens {
		b.tokens = maxTokens
	}
	b.lastUpdate = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), ceilSeconds((maxTokens - b.tokens) / rate)
	}
	return false, 0, ceilSeconds((1 - b.tokens) / rate)
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUpdate.Before(cutoff)
}

// ceilSeconds rounds a positive wait up to whole seconds, minimum one.
func ceilSeconds(s float64) int64 {
	n := int64(s)
	if float64(n) < s {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
