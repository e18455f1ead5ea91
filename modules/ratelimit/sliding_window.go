// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ratelimit

import (
	"context"
	"fmt"
	"math/bits"
	"time"

	"profile-service/modules/clock"
)

var _ RateLimiter = (*SlidingWindowRateLimiter)(nil)

// SlidingWindowRateLimiter approximates a sliding window with two fixed
// windows: the previous window's count is weighted by how much of it still
// overlaps the sliding interval ending now.
//
// Counters live in a CounterStore so several instances can share them.
type SlidingWindowRateLimiter struct {
	clock     clock.Clock
	counter   CounterStore
	keyPrefix string

	limit  uint64
	window time.Duration
}

func SlidingWindowFactory(clk clock.Clock, counter CounterStore, keyPrefix string) LimiterFactory {
	return func(limit int64, window time.Duration) RateLimiter {
		return NewSlidingWindowRateLimiter(clk, counter, keyPrefix, limit, window)
	}
}

func NewSlidingWindowRateLimiter(clk clock.Clock, counter CounterStore, keyPrefix string, limit int64, window time.Duration) *SlidingWindowRateLimiter {
	return &SlidingWindowRateLimiter{
		clock:     clk,
		counter:   counter,
		keyPrefix: keyPrefix,
		limit:     uint64(max(limit, 0)),
		window:    window,
	}
}

// Allow implements RateLimiter.
func (s *SlidingWindowRateLimiter) Allow(ctx context.Context, key Key) (Result, error) {
	if s.window <= 0 {
		return Result{}, fmt.Errorf("sliding window: non-positive window %s", s.window)
	}

	nowNs := s.clock.Now().UnixNano()
	windowNs := s.window.Nanoseconds()
	idx := nowNs / windowNs

	// counters outlive their window by one more so the next window can weigh them
	cur, err := s.counter.Incr(ctx, s.buildKey(key, idx), 2*s.window)
	if err != nil {
		return Result{}, err
	}
	prev, err := s.counter.Get(ctx, s.buildKey(key, idx-1))
	if err != nil {
		return Result{}, err
	}

	elapsed := min(max(nowNs-idx*windowNs, 0), windowNs)
	allowed, used := weighUsage(uint64(max(cur, 0)), uint64(max(prev, 0)), uint64(elapsed), uint64(windowNs), s.limit)

	resetIn := max(s.window-time.Duration(elapsed), 0)
	result := Result{
		Allowed:       allowed,
		Remaining:     int64(s.limit - min(used, s.limit)),
		Limit:         int64(s.limit),
		Window:        s.window,
		WindowResetIn: resetIn,
	}
	if !allowed {
		result.RetryAfter = resetIn
	}
	return result, nil
}

// weighUsage computes usage = cur*window + prev*(window-elapsed) in 128 bits
// and compares it against limit*window, so no float rounding can let two
// consecutive requests see the same remaining count. used is usage/window
// rounded up, saturating at MaxUint64.
func weighUsage(cur, prev, elapsed, window, limit uint64) (allowed bool, used uint64) {
	curHi, curLo := bits.Mul64(cur, window)
	prevHi, prevLo := bits.Mul64(prev, window-elapsed)
	lo, carry := bits.Add64(curLo, prevLo, 0)
	hi, _ := bits.Add64(curHi, prevHi, carry)

	limHi, limLo := bits.Mul64(limit, window)
	allowed = hi < limHi || (hi == limHi && lo <= limLo)

	if hi >= window {
		return allowed, ^uint64(0)
	}
	q, r := bits.Div64(hi, lo, window)
	if r != 0 && q != ^uint64(0) {
		q++
	}
	return allowed, q
}

func (s *SlidingWindowRateLimiter) buildKey(key Key, windowIdx int64) string {
	return fmt.Sprintf("%s:%s:%d", s.keyPrefix, key, windowIdx)
}
