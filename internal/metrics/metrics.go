package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served by the gateway.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of gateway HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	remoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_remote_requests_total",
			Help: "Requests sent to the upstream products API.",
		},
		[]string{"code", "method"},
	)

	remoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_remote_request_duration_seconds",
			Help:    "Latency of upstream products API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	repositoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_repository_operations_total",
			Help: "Repository operations by kind, serving mode and outcome.",
		},
		[]string{"operation", "mode", "outcome"},
	)

	connectivityMode = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_connectivity_mode",
			Help: "1 for the mode the session is pinned to.",
		},
		[]string{"mode"},
	)

	queryCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_query_cache_results_total",
			Help: "Product list reads by cache result (hit, miss, shared).",
		},
		[]string{"result"},
	)
)

var modes = []string{"unknown", "online", "offline"}

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	SetMode("unknown")
}

// InstrumentRoundTripper counts and times every upstream request.
func InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(remoteRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(remoteRequestDuration, next))
}

func ObserveOperation(operation, mode string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	repositoryOperations.WithLabelValues(operation, mode, outcome).Inc()
}

func SetMode(mode string) {
	for _, m := range modes {
		value := 0.0
		if m == mode {
			value = 1
		}
		connectivityMode.WithLabelValues(m).Set(value)
	}
}

func ObserveQuery(result string) {
	queryCacheResults.WithLabelValues(result).Inc()
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {

			// r.Pattern is filled in by the mux, so ids do not explode label cardinality.
			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
