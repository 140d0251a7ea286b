package middleware

import (
	"net"
	"net/http"
	"sync"

	"finpal-server/src/apperr"
	"finpal-server/src/logger"
	"finpal-server/src/util"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxLimiters bounds the per-key limiter map; it is reset when exceeded.
const maxLimiters = 10000

// RateLimiter throttles requests per token subject, falling back to the
// client address for unauthenticated calls.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxLimiters {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Handler enforces the limit. A limiter with a non-positive rate lets
// everything through.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if rl == nil || rl.rate <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientAddr(r)
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			key = "sub:" + claims.Subject
		}

		if !rl.limiter(key).Allow() {
			logger.Get().Warn("rate limit exceeded", zap.String("key", key), zap.String("path", r.URL.Path))
			util.WriteError(w, r, apperr.RateLimited())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
