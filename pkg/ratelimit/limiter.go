package ratelimit

import (
	"sync"
	"time"
)

// Default limiter values.
const (
	DefaultCleanupInterval = 1 * time.Minute
	DefaultEntryTTL        = 1 * time.Minute
)

// Config configures a Limiter.
type Config struct {
	Rate            float64       // tokens per second
	Burst           int           // maximum bucket capacity; defaults to max(1, 2*Rate)
	CleanupInterval time.Duration // how often idle clients are dropped
	EntryTTL        time.Duration // how long a client lives without activity
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Reset is the number of seconds until the bucket is full (allowed) or
	// until the next request may pass (refused).
	Reset int64
}

// Limiter applies one token bucket per client key.
type Limiter struct {
	rate     float64
	burst    int
	entryTTL time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	buckets map[string]*bucket

	stopOnce  sync.Once
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// New creates a Limiter and starts its cleanup goroutine. Stop must be
// called when it is no longer needed.
func New(cfg Config) *Limiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(cfg.Rate * 2)
	}
	if burst < 1 {
		burst = 1
	}
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ttl := cfg.EntryTTL
	if ttl <= 0 {
		ttl = DefaultEntryTTL
	}

	l := &Limiter{
		rate:      cfg.Rate,
		burst:     burst,
		entryTTL:  ttl,
		now:       time.Now,
		buckets:   make(map[string]*bucket),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	go l.cleanup(interval)
	return l
}

// Burst returns the bucket capacity.
func (l *Limiter) Burst() int {
	return l.burst
}

// Allow takes a token from key's bucket.
func (l *Limiter) Allow(key string) Decision {
	now := l.now()

	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if !ok {
		l.mu.Lock()
		if b, ok = l.buckets[key]; !ok {
			b = &bucket{tokens: float64(l.burst), lastUpdate: now}
			l.buckets[key] = b
		}
		l.mu.Unlock()
	}

	allowed, remaining, reset := b.take(now, l.rate, l.burst)
	return Decision{Allowed: allowed, Limit: l.burst, Remaining: remaining, Reset: reset}
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. Safe to call multiple times.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
	<-l.stoppedCh
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(l.stoppedCh)

	for {
		select {
		case <-ticker.C:
			l.removeIdle()
		case <-l.stopCh:
			return
		}
	}
}

// removeIdle drops clients that have not made a request within the entry TTL.
func (l *Limiter) removeIdle() {
	cutoff := l.now().Add(-l.entryTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}
