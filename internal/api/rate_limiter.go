package api

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter enforces per-user request rates. Subscribed users get the
// higher limit; anonymous callers are keyed by remote address at the
// default limit.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex

	defaultLimit    rate.Limit
	subscribedLimit rate.Limit
	burstSize       int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(defaultRPS, subscribedRPS int) *RateLimiter {
	return &RateLimiter{
		limiters:        make(map[string]*rate.Limiter),
		defaultLimit:    rate.Limit(defaultRPS),
		subscribedLimit: rate.Limit(subscribedRPS),
		burstSize:       10,
	}
}

// getLimiter returns the rate limiter for a caller key.
func (rl *RateLimiter) getLimiter(key string, subscribed bool) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	limit := rl.defaultLimit
	if subscribed {
		limit = rl.subscribedLimit
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Another goroutine may have created it meanwhile.
	if limiter, exists := rl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(limit, rl.burstSize)
	rl.limiters[key] = limiter

	return limiter
}

// Allow reports whether the caller may proceed.
func (rl *RateLimiter) Allow(key string, subscribed bool) bool {
	return rl.getLimiter(key, subscribed).Allow()
}

// RateLimitMiddleware creates a middleware that enforces rate limiting.
// The upstream auth proxy identifies the caller via X-User-ID and flags
// subscribers via X-User-Subscribed.
func RateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-User-ID")
			if key == "" {
				key = r.RemoteAddr
			}

			subscribed := r.Header.Get("X-User-Subscribed") == "true"

			if !rl.Allow(key, subscribed) {
				respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
					"Rate limit exceeded, retry later", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
