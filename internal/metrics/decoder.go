// Package metrics exposes application metrics collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decoderOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txsplit7000",
		Subsystem: "decoder",
		Name:      "operations_total",
		Help:      "Count of raw decode operations.",
	}, []string{"operation", "status"})

	decoderOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txsplit7000",
		Subsystem: "decoder",
		Name:      "operation_duration_seconds",
		Help:      "Duration of raw decode operations.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
	}, []string{"operation", "status"})

	decoderFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txsplit7000",
		Subsystem: "decoder",
		Name:      "failures_total",
		Help:      "Count of decode failures by failure kind.",
	}, []string{"operation", "reason"})
)

// Decoder tracks metrics for raw byte decoding.
type Decoder struct{}

// NewDecoder creates a Decoder metrics collector.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Observe records outcome and duration of a decode operation.
func (m Decoder) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
		decoderFailuresTotal.WithLabelValues(operation, failureReason(err)).Inc()
	}
	decoderOperationsTotal.WithLabelValues(operation, status).Inc()
	decoderOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, rawtx.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, rawtx.ErrTruncatedVarInt):
		return "truncated_varint"
	case errors.Is(err, rawtx.ErrTrailingData):
		return "trailing_data"
	case errors.Is(err, rawtx.ErrInvalidEncoding):
		return "invalid_encoding"
	default:
		return "other"
	}
}
