package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"baby-tracker-go/internal/ratelimit"
	"baby-tracker-go/pkg/logger"
)

// RateLimit caps requests per client IP within scope. Limiter failures let
// the request through.
func RateLimit(limiter ratelimit.Limiter, scope string, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := scope + ":" + clientIP(r)
			allowed, count, err := limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				logger.FromContext(r.Context(), log).InternalError("ratelimit: check failed", err, "scope", scope)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.FromContext(r.Context(), log).Warn("ratelimit: limit exceeded", "scope", scope, "count", count, "limit", limit)
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
