package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	hackathonsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hackathons_submitted_total",
			Help: "Total number of accepted hackathon submissions",
		},
	)

	moderationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackathon_moderation_decisions_total",
			Help: "Moderation decisions by outcome",
		},
		[]string{"decision"},
	)

	sweepRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "status_sweep_runs_total",
			Help: "Total number of status sweep runs",
		},
	)

	sweepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_sweep_failures_total",
			Help: "Status sweep step failures",
		},
		[]string{"step"},
	)

	sweepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_sweep_transitions_total",
			Help: "Hackathons moved by the status sweep",
		},
		[]string{"to"},
	)
)

func RecordSubmission() { hackathonsSubmitted.Inc() }

func RecordDecision(decision string) { moderationDecisions.WithLabelValues(decision).Inc() }

func RecordSweepRun() { sweepRuns.Inc() }

func RecordSweepFailure(step string) { sweepFailures.WithLabelValues(step).Inc() }

func RecordSweepTransitions(to string, n int64) {
	if n > 0 {
		sweepTransitions.WithLabelValues(to).Add(float64(n))
	}
}

// Handler отдает метрики в формате Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware считает запросы по шаблону маршрута chi
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
