package middlewarex

import (
	"cmp"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zenazn/goji/web/mutil"
)

// Metrics замеряет длительность запросов с меткой по шаблону маршрута chi,
// чтобы параметры пути не раздували число серий.
func Metrics(duration *prometheus.HistogramVec) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := mutil.WrapWriter(w)

			next.ServeHTTP(lw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			duration.WithLabelValues(
				route,
				r.Method,
				strconv.Itoa(cmp.Or(lw.Status(), http.StatusOK)),
			).Observe(time.Since(start).Seconds())
		})
	}
}
