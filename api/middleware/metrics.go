package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hyun090116/vortex-game-explorer/pkg/metrics"
)

// Metrics records per-route request counts and latencies. The chi route
// pattern keeps the label cardinality bounded.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if httpMetrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			route := ""
			if ctx := chi.RouteContext(r.Context()); ctx != nil {
				route = ctx.RoutePattern()
			}
			httpMetrics.Observe(r.Method, route, rec.status, time.Since(start))
		})
	}
}
