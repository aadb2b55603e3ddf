package pebblestore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromMetrics implements MetricsHook backed by Prometheus collectors.
type PromMetrics struct {
	writeBytes   prometheus.Counter
	readBytes    prometheus.Counter
	commitTotal  prometheus.Counter
	commitBytes  prometheus.Counter
	writeSeconds prometheus.Histogram
}

// NewPromMetrics registers storage collectors with the default registry.
// Call at most once per process.
func NewPromMetrics() *PromMetrics {
	return &PromMetrics{
		writeBytes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "selftransfer_store_write_bytes_total",
			Help: "Bytes written to the store.",
		}),
		readBytes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "selftransfer_store_read_bytes_total",
			Help: "Bytes read from the store.",
		}),
		commitTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "selftransfer_store_batch_commits_total",
			Help: "Committed store batches.",
		}),
		commitBytes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "selftransfer_store_batch_commit_bytes_total",
			Help: "Bytes committed in store batches.",
		}),
		writeSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "selftransfer_store_write_seconds",
			Help:    "Latency of single-key store writes.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *PromMetrics) ObserveWrite(elapsed time.Duration, bytes int) {
	m.writeBytes.Add(float64(bytes))
	m.writeSeconds.Observe(elapsed.Seconds())
}

func (m *PromMetrics) ObserveRead(_ time.Duration, bytes int) {
	m.readBytes.Add(float64(bytes))
}

func (m *PromMetrics) ObserveBatchCommit(_ time.Duration, _ int, bytes int) {
	m.commitTotal.Inc()
	m.commitBytes.Add(float64(bytes))
}
