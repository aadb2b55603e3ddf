package broadcast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	subscribersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "selftransfer_subscribers",
		Help: "Currently registered stream subscribers.",
	})
	broadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selftransfer_broadcasts_total",
		Help: "Events broadcast to subscribers, by action.",
	}, []string{"action"})
	droppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "selftransfer_subscribers_dropped_total",
		Help: "Subscribers kicked for full or closed queues.",
	})
)
