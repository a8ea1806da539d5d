// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// MsgTooManyRequests is the body message of a rate-limited response.
const MsgTooManyRequests = "Too many requests"

// Limiter decides whether another request from key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit returns middleware that limits requests per client IP. If the
// limiter itself fails the request is let through.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				slog.Warn("rate limiter unavailable", "error", err)
				ok = true
			}
			if !ok {
				w.Header().Set("Retry-After", "60")
				WriteMessage(w, http.StatusTooManyRequests, MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// visitor is the token bucket of one client.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is an in-process token-bucket limiter keyed by client. It
// allows a burst of limit requests refilled evenly over window. Counters are
// per process, so use ValkeyLimiter when running several replicas.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryLimiter creates a limiter allowing limit requests per window.
// It starts a background goroutine to drop idle clients.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit < 1 {
		limit = 1
	}
	ml := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ml.cleanup()
			case <-ml.stopCh:
				return
			}
		}
	}()

	return ml
}

// Stop terminates the background cleanup goroutine.
func (ml *MemoryLimiter) Stop() {
	ml.stopOnce.Do(func() { close(ml.stopCh) })
}

// Allow consumes one token for key.
func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	ml.mu.Lock()
	v, ok := ml.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(ml.every, ml.burst)}
		ml.visitors[key] = v
	}
	v.lastSeen = time.Now()
	ml.mu.Unlock()

	return v.limiter.Allow(), nil
}

// cleanup removes clients idle for longer than the window; their bucket
// would be full again anyway.
func (ml *MemoryLimiter) cleanup() {
	cutoff := time.Now().Add(-ml.window)

	ml.mu.Lock()
	defer ml.mu.Unlock()

	for key, v := range ml.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(ml.visitors, key)
		}
	}
}

// ValkeyLimiter is a fixed-window counter shared by every server instance
// through Valkey.
type ValkeyLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewValkeyLimiter creates a limiter allowing limit requests per window.
// Keys are namespaced with prefix.
func NewValkeyLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *ValkeyLimiter {
	return &ValkeyLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow increments the counter for key, starting its window on first use.
func (vl *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := vl.prefix + key

	pipe := vl.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, vl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val() <= int64(vl.limit), nil
}

// clientIP returns the host part of RemoteAddr. Forwarding headers are not
// read here; behind a trusted proxy chi's RealIP rewrites RemoteAddr first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
