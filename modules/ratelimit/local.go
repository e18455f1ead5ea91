package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"profile-service/modules/clock"

	"golang.org/x/time/rate"
)

var _ RateLimiter = (*LocalRateLimiter)(nil)

// LocalRateLimiter is an in-process token bucket per key, refilled at
// limit/window with a burst of limit. It is used when no shared counter
// store is configured, so limits are per instance.
type LocalRateLimiter struct {
	clock  clock.Clock
	limit  int64
	window time.Duration
	every  rate.Limit

	mu      sync.Mutex
	buckets map[Key]*bucket

	// idle buckets older than this are dropped on the next sweep
	idleTTL   time.Duration
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func LocalFactory(clk clock.Clock) LimiterFactory {
	return func(limit int64, window time.Duration) RateLimiter {
		return NewLocalRateLimiter(clk, limit, window)
	}
}

func NewLocalRateLimiter(clk clock.Clock, limit int64, window time.Duration) *LocalRateLimiter {
	every := rate.Inf
	if limit > 0 && window > 0 {
		every = rate.Every(window / time.Duration(limit))
	}
	return &LocalRateLimiter{
		clock:   clk,
		limit:   limit,
		window:  window,
		every:   every,
		buckets: make(map[Key]*bucket),
		idleTTL: max(2*window, time.Minute),
	}
}

// Allow implements RateLimiter.
func (l *LocalRateLimiter) Allow(_ context.Context, key Key) (Result, error) {
	now := l.clock.Now()

	l.mu.Lock()
	l.sweep(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.every, int(min(l.limit, math.MaxInt32)))}
		l.buckets[key] = b
	}
	b.lastSeen = now
	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	l.mu.Unlock()

	result := Result{
		Allowed:   allowed,
		Remaining: int64(max(math.Floor(tokens), 0)),
		Limit:     l.limit,
		Window:    l.window,
	}
	// time until the bucket is full again
	if deficit := float64(l.limit) - tokens; deficit > 0 && l.every != rate.Inf {
		result.WindowResetIn = time.Duration(deficit / float64(l.every) * float64(time.Second))
	}
	if !allowed && l.every != rate.Inf && l.every > 0 {
		result.RetryAfter = time.Duration((1 - tokens) / float64(l.every) * float64(time.Second))
	}
	return result, nil
}

func (l *LocalRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, k)
		}
	}
}
