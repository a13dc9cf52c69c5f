package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wellnessflow/api/internal/metrics"
)

// Metrics records request counts and latency per route pattern. Routes are
// labelled by their chi pattern so ids never reach label values.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		metrics.ObserveHTTPRequest(r.Method, route, wrapped.statusCode, time.Since(start))
	})
}
