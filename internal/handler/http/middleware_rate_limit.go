package http

import (
	"net/http"

	"github.com/MKhiriev/go-sched/internal/app"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/utils"
)

// withRateLimit rejects clients that exceed the credential submission rate
// with 429 Too Many Requests.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.loginLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := utils.ClientIP(r)
		if !h.loginLimiter.Allow(ip) {
			logger.FromRequest(r).Warn().Str("ip", ip).Str("uri", r.RequestURI).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", "1")
			http.Error(w, app.MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
