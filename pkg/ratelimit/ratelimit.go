// Package ratelimit provides a per-client token bucket limiter for the API.
package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter decides whether a client's request may proceed. When denied,
// the returned time is when the client may retry.
type RateLimiter interface {
	Allow(clientID string) (bool, time.Time)
}

// Config controls the token bucket shape.
type Config struct {
	RequestsPerMinute int
	Burst             int
}

// DefaultConfig is sized for a single-organization administrative tool.
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		Burst:             30,
	}
}

// MemoryLimiter is an in-process token bucket per client. Buckets refill
// continuously and idle buckets are pruned on access.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64 // tokens per second
	burst     float64
	lastPrune time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:   make(map[string]*bucket),
		rate:      float64(cfg.RequestsPerMinute) / 60.0,
		burst:     float64(cfg.Burst),
		lastPrune: time.Now(),
	}
}

func (l *MemoryLimiter) Allow(clientID string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.pruneLocked(now)

	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: l.burst}
		l.buckets[clientID] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		wait := time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
		return false, now.Add(wait)
	}
	b.tokens--
	return true, now
}

// pruneLocked drops buckets idle long enough to be full again.
func (l *MemoryLimiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < time.Minute {
		return
	}
	idle := time.Duration(l.burst/l.rate*float64(time.Second)) + time.Minute
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) > idle {
			delete(l.buckets, id)
		}
	}
	l.lastPrune = now
}
