package ratelimit

import (
	"sync"
	"time"
)

// clientBucket tracks remaining budget for one client key.
type clientBucket struct {
	tokens float64
	seen   time.Time
}

// Limiter is a per-key token bucket guarding the analysis endpoints. Each
// key refills at refillPerSec up to burst. Buckets idle past the prune
// window are dropped so short-lived clients do not accumulate.
type Limiter struct {
	mu           sync.Mutex
	buckets      map[string]*clientBucket
	burst        float64
	refillPerSec float64
	lastPrune    time.Time
}

const pruneAfter = 10 * time.Minute

// New creates a limiter allowing burst requests at once and refillPerSec
// sustained per key.
func New(burst, refillPerSec float64) *Limiter {
	if burst < 1 {
		burst = 1
	}
	if refillPerSec <= 0 {
		refillPerSec = 1
	}
	return &Limiter{
		buckets:      make(map[string]*clientBucket),
		burst:        burst,
		refillPerSec: refillPerSec,
		lastPrune:    time.Now(),
	}
}

// Allow consumes one token for key, reporting whether the request may
// proceed.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) > pruneAfter {
		l.prune(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &clientBucket{tokens: l.burst - 1, seen: now}
		return true
	}

	b.tokens += now.Sub(b.seen).Seconds() * l.refillPerSec
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets not seen within the prune window; caller holds the
// lock.
func (l *Limiter) prune(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.seen) > pruneAfter {
			delete(l.buckets, k)
		}
	}
	l.lastPrune = now
}
