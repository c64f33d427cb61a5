package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/platform/metrics"
)

// Metrics returns middleware recording request counts and latencies. The
// path label is the matched ServeMux pattern, so it must wrap the mux
// directly; unmatched requests share one label.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := newStatusRecorder(w)
			next.ServeHTTP(rw, r)

			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(rw.status)

			m.HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			m.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}
