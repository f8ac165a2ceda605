package middlewarex

import (
	"cmp"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zenazn/goji/web/mutil"

	"provider_map/pkg/metrics"
)

// Metrics records request latency labelled with the matched chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := mutil.WrapWriter(w)

		next.ServeHTTP(lw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		metrics.HTTPRequestSeconds.
			WithLabelValues(route, r.Method, strconv.Itoa(cmp.Or(lw.Status(), http.StatusOK))).
			Observe(time.Since(start).Seconds())
	})
}
