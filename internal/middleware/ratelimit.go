package middleware

import (
	"net/http"
	"strconv"

	"github.com/readbacklabs/readback-web/internal/config"
	"github.com/readbacklabs/readback-web/pkg/httpext"
	"github.com/readbacklabs/readback-web/pkg/ratelimit"
	"github.com/rs/zerolog/log"
)

// RateLimit throttles sign-in attempts per client IP. Exceeding the limit
// returns the structured "rate-limited" error code so the UI can render a
// retry hint.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	limiter := ratelimit.NewLimiter(cfg.Window, cfg.MaxHits)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			// Use X-Forwarded-For if behind proxy, otherwise remote address
			ip := r.Header.Get("X-Forwarded-For")
			if ip == "" {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				log.Warn().Str("ip", ip).Msg("Sign-in rate limit exceeded")
				httpext.JsonErrorWithDetails(w, http.StatusTooManyRequests, httpext.ErrorResponse{
					Error:      "too many sign-in attempts",
					Code:       "rate-limited",
					RetryAfter: strconv.Itoa(int(cfg.Window.Seconds())),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
