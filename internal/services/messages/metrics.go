package messagesvc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "selftransfer_message_mutations_total",
		Help: "Message mutations applied, by operation.",
	}, []string{"op"})
	sweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "selftransfer_messages_swept_total",
		Help: "Messages removed by the expiry sweeper.",
	})
)
