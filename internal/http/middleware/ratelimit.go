package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/http/response"
	"jobboard/internal/observability/metrics"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// RateLimiter is an in-process fixed-window limiter used when Redis is
// not configured. State is lost on restart, which is acceptable for a
// login throttle.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
}

type rateWindow struct {
	startedAt time.Time
	hits      int
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]*rateWindow)}
}

func (r *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	current, ok := r.windows[key]
	if !ok || now.Sub(current.startedAt) >= window {
		r.windows[key] = &rateWindow{startedAt: now, hits: 1}
		if len(r.windows) > 1<<14 {
			r.sweep(now, window)
		}
		return true
	}
	current.hits++
	return current.hits <= limit
}

// sweep drops expired windows so the map cannot grow without bound
// under a key-spraying client. Caller holds the lock.
func (r *RateLimiter) sweep(now time.Time, window time.Duration) {
	for key, current := range r.windows {
		if now.Sub(current.startedAt) >= window {
			delete(r.windows, key)
		}
	}
}

func RateLimit(limiter Limiter, keyFn func(*http.Request) string, limit int, window time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow(key, limit, window) {
				metrics.ObserveDenial("rate_limited")
				response.Error(w, common.NewError(common.CodeRateLimited, "too many requests", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP prefers the first X-Forwarded-For hop set by the reverse
// proxy and falls back to the socket peer address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
