package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txsplit7000",
		Subsystem: "http_server",
		Name:      "requests_total",
		Help:      "Count of HTTP API requests.",
	}, []string{"route", "method", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txsplit7000",
		Subsystem: "http_server",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)

// HTTPServer tracks metrics for the HTTP API.
type HTTPServer struct{}

// NewHTTPServer creates an HTTPServer metrics collector.
func NewHTTPServer() *HTTPServer {
	return &HTTPServer{}
}

// Observe records a served request with its response code and duration.
func (m HTTPServer) Observe(route, method string, code int, started time.Time) {
	c := strconv.Itoa(code)
	httpRequestsTotal.WithLabelValues(route, method, c).Inc()
	httpRequestDuration.WithLabelValues(route, method, c).Observe(time.Since(started).Seconds())
}
