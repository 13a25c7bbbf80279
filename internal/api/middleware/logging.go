package middleware

import (
	"net/http"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// LoggingMiddleware writes one access log line per request. Server errors are
// logged at error level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger := observability.LoggerFromContext(r.Context())
		event := logger.Info()
		if rec.status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", r.Pattern).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
