package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/arthurCDG/Vinted-clone-server/internal/platform/metrics"
)

// Metrics records request latency and error counts per route.
func Metrics(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}

			m.HTTPRequestLatency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
			if ww.Status() >= http.StatusBadRequest {
				m.HTTPErrorsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
			}
		})
	}
}
