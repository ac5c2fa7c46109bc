package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requestsTotal *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	result := metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "availability",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "availability",
				Name:      "query_duration_seconds",
				Help:      "Time spent computing availability.",
				Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
			},
			[]string{"kind"},
		),
	}

	registerer.MustRegister(
		result.requestsTotal,
		result.queryDuration,
	)

	return &result
}

func (m *metrics) observeQuery(kind string, started time.Time) {
	m.queryDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// middleware counts requests once routing resolved the pattern.
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r)

			route := r.URL.Path
			if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil && routeCtx.RoutePattern() != "" {
				route = routeCtx.RoutePattern()
			}

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.requestsTotal.WithLabelValues(
				r.Method,
				route,
				strconv.Itoa(status),
			).Inc()
		},
	)
}
