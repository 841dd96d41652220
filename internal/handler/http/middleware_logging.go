package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-student-registry/internal/logger"
)

// withLogging writes one access log line per request and records the
// request in the metrics collector.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		duration := time.Since(start)
		status := lw.Status()

		h.collector.RecordHTTPRequest(r.Method, status, duration)
		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}
