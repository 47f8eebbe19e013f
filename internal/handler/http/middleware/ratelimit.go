package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-reconciler/internal/handler/http/response"
	"golang.org/x/time/rate"
)

// RateLimiter throttles report runs with a single token bucket shared by all clients.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewRateLimiter(rps float64, burst int, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			w.Header().Set("Retry-After", "1")
			response.TooManyRequests(w, "Rate limit exceeded, retry shortly")
			return
		}

		next.ServeHTTP(w, r)
	})
}
