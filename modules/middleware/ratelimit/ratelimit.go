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
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"profile-service/modules/middleware/problem"
	rl "profile-service/modules/ratelimit"
)

// KeyFunc extracts the caller identity from a request. An empty key means
// the caller could not be identified.
type KeyFunc func(*http.Request) rl.Key

// Middleware applies one limiter to every request except skipped paths.
// When the limiter fails the request is let through: the counter store is
// an optional dependency and must not take the API down with it.
func Middleware(limiter rl.RateLimiter, keyFn KeyFunc, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFn(r)
			if key == "" {
				slog.WarnContext(r.Context(), "no rate limit key",
					slog.String("middleware", "rate_limiter"),
					slog.String("url", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.ErrorContext(r.Context(), "rate limit error",
					slog.String("middleware", "rate_limiter"),
					slog.String("url", r.URL.Path),
					slog.Any("error", err),
				)
				next.ServeHTTP(w, r)
				return
			}

			writeRateLimitHeaders(w, result)

			if !result.Allowed {
				slog.DebugContext(r.Context(), "rate limited",
					slog.String("middleware", "rate_limiter"),
					slog.String("url", r.URL.Path),
					slog.String("key", string(key)),
				)
				w.Header().Set("Retry-After", strconv.FormatInt(ceilSeconds(result.RetryAfter), 10))
				problem.Write(w, problem.TooManyRequests(
					"rate limit exceeded",
					problem.WithInstance(r.URL.Path),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRateLimitHeaders(w http.ResponseWriter, result rl.Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
	h.Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(ceilSeconds(result.WindowResetIn), 10))
}

// ceilSeconds rounds up so clients never retry early; never below 1s.
func ceilSeconds(d time.Duration) int64 {
	s := int64(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// RemoteIPKeyFunc keys requests by the socket peer address without port.
func RemoteIPKeyFunc(r *http.Request) rl.Key {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return rl.Key(strings.TrimSpace(r.RemoteAddr))
	}
	return rl.Key(host)
}

// ForwardedForKeyFunc keys requests by the last X-Forwarded-For hop, the one
// appended by the closest proxy, and falls back to the socket peer.
func ForwardedForKeyFunc(r *http.Request) rl.Key {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return RemoteIPKeyFunc(r)
	}
	hops := strings.Split(xff, ",")
	if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
		return rl.Key(last)
	}
	return RemoteIPKeyFunc(r)
}

// KeyFuncFor picks the key strategy for cfg.
func KeyFuncFor(cfg Config) KeyFunc {
	if cfg.TrustForwardedFor {
		return ForwardedForKeyFunc
	}
	return RemoteIPKeyFunc
}
