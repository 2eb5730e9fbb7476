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
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	cartItemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_items_added_total",
			Help: "Cart lines added, by kind.",
		},
		[]string{"kind"},
	)
	cartsCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carts_cleared_total",
			Help: "Carts cleared.",
		},
	)
	checkoutsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkouts_submitted_total",
			Help: "Checkouts successfully submitted upstream.",
		},
	)
	paymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Manual M-Pesa confirmations recorded upstream.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func ObserveItemAdded(custom bool) {
	kind := "catalog"
	if custom {
		kind = "custom"
	}

	cartItemsAdded.WithLabelValues(kind).Inc()
}

func ObserveCartCleared() { cartsCleared.Inc() }

func ObserveCheckout() { checkoutsSubmitted.Inc() }

func ObservePayment() { paymentsRecorded.Inc() }

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

		rw := newResponseWriter(w)

		pathPattern := r.URL.Path
		if id := r.PathValue("id"); id != "" {
			pathPattern = r.URL.Path[:len(r.URL.Path)-len(id)] + "{id}"
		}

		defer func() {
			duration := time.Since(start)

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, pathPattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
		}()

		next.ServeHTTP(rw, r)
	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
