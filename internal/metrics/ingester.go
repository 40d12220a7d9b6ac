package metrics

import (
	"time"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchMissingTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txsplit7000",
		Subsystem: "ingester",
		Name:      "fetch_missing_total",
		Help:      "Count of attempts to fetch missing block heights.",
	}, []string{"network", "status"})

	ingesterFetchMissingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txsplit7000",
		Subsystem: "ingester",
		Name:      "fetch_missing_duration_seconds",
		Help:      "Duration of fetching missing block heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txsplit7000",
		Subsystem: "ingester",
		Name:      "process_batch_total",
		Help:      "Count of processed height batches.",
	}, []string{"network", "status"})

	ingesterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txsplit7000",
		Subsystem: "ingester",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txsplit7000",
		Subsystem: "ingester",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txsplit7000",
		Subsystem: "ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of decoding and writing a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
)

// Ingester tracks metrics for the block ingestion pipeline.
type Ingester struct {
	network model.Network
}

// NewIngester constructs an Ingester metrics collector.
func NewIngester(network model.Network) *Ingester {
	if network == "" {
		network = "unknown"
	}
	return &Ingester{network: network}
}

// ObserveFetchMissing records a fetch-missing attempt outcome and duration.
func (m Ingester) ObserveFetchMissing(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterFetchMissingTotal.WithLabelValues(string(m.network), status).Inc()
	ingesterFetchMissingDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a batch of heights.
func (m Ingester) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterProcessBatchTotal.WithLabelValues(string(m.network), status).Inc()
	ingesterProcessBatchDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	ingesterProcessBatchSize.WithLabelValues(string(m.network)).Observe(float64(heights))
}

// ObserveProcessHeight records processing of a single height.
func (m Ingester) ObserveProcessHeight(err error, _ uint64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterProcessHeightDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}
