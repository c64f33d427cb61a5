package middleware

import (
	"net/http"

	"github.com/Bahjat/site-audit-tool/internal/platform/requestid"
)

// RequestID is middleware that assigns a request ID to each request and
// echoes it in the response. A well-formed incoming X-Request-ID is reused;
// anything else is replaced with a new UUID v4.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestid.Resolve(r.Header.Get(requestid.Header))

		w.Header().Set(requestid.Header, id)
		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
