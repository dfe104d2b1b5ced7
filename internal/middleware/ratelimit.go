// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RateLimiter allows limit requests per client IP in each fixed window.
// Counters are go-cache items that expire with their window, so idle
// clients need no sweeping.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu   sync.Mutex // serialises Add/Increment on one key
	hits *gocache.Cache
}

// NewRateLimiter creates a limiter for the login and chat endpoints.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		hits:   gocache.New(window, 2*window),
	}
}

// allow counts a request for key and reports whether it is within the
// limit. When it is not, retry is the time until the window resets.
func (rl *RateLimiter) allow(key string) (ok bool, retry time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if err := rl.hits.Add(key, 1, rl.window); err == nil {
		return rl.limit > 0, rl.window
	}
	n, err := rl.hits.IncrementInt(key, 1)
	if err != nil {
		// Expired between Add and IncrementInt: this starts a new window.
		rl.hits.Set(key, 1, rl.window)
		return rl.limit > 0, rl.window
	}
	if n <= rl.limit {
		return true, 0
	}

	_, expires, found := rl.hits.GetWithExpiration(key)
	if !found {
		return false, rl.window
	}
	return false, time.Until(expires)
}

// Middleware rejects clients over the limit with 429 and a Retry-After
// header in whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, retry := rl.allow(clientIP(r)); !ok {
			secs := int(math.Ceil(retry.Seconds()))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			writeError(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr. Forwarded headers are
// client-controlled and are ignored here; behind a trusted proxy the
// router rewrites RemoteAddr from them before this runs.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
