package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	webhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_webhooks_total",
			Help: "Webhooks handled by event type and outcome.",
		},
		[]string{"event", "outcome"},
	)
	deliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_deliveries_total",
			Help: "Guilded webhook executions by response status.",
		},
		[]string{"status"},
	)
	deliveryLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_delivery_duration_seconds",
			Help:    "Guilded webhook execution latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	registerOnce sync.Once
)

// Register adds the relay collectors to the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpLatency, webhooks, deliveries, deliveryLatency)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records request counts and latency. Requests are labelled by
// route pattern, never by raw path, since paths carry webhook tokens.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(lrw.statusCode)
		httpRequests.WithLabelValues(r.Method, route, status).Inc()
		httpLatency.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

// IncWebhook counts a handled webhook. outcome is send, suppress, reject or
// failed.
func IncWebhook(event, outcome string) {
	if event == "" {
		event = "unknown"
	}
	webhooks.WithLabelValues(event, outcome).Inc()
}

// ObserveDelivery records one Guilded execution. status 0 means a transport
// failure.
func ObserveDelivery(status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	deliveries.WithLabelValues(label).Inc()
	deliveryLatency.Observe(d.Seconds())
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
