package broadcast

import (
	"encoding/json"

	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

// Broadcaster serializes a domain event once and pushes it to every
// registered subscriber. Strictly fire-and-forget: callers are never told
// about per-subscriber delivery outcomes.
type Broadcaster struct {
	reg    *Registry
	logger logpkg.Logger
}

// NewBroadcaster wires a broadcaster over the given registry.
func NewBroadcaster(reg *Registry, logger logpkg.Logger) *Broadcaster {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Broadcaster{reg: reg, logger: logger.WithComponent("broadcast")}
}

// Broadcast delivers the event to the current registry snapshot. A
// subscriber whose queue is full (dead or stalled consumer) is kicked and
// the loop continues; one bad subscriber never aborts the fan-out.
func (b *Broadcaster) Broadcast(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error("event serialization failed", logpkg.Str("action", ev.Action), logpkg.Err(err))
		return
	}

	subs := b.reg.Snapshot()
	for _, s := range subs {
		if !s.filter.Eval(ev) {
			continue
		}
		if !s.offer(payload) {
			b.reg.Unregister(s)
			droppedTotal.Inc()
			b.logger.Warn("subscriber dropped: queue full or closed", logpkg.Str("subscriber", s.ID()))
		}
	}
	broadcastsTotal.WithLabelValues(ev.Action).Inc()
	b.logger.Debug("broadcast delivered", logpkg.Str("action", ev.Action), logpkg.Int("subscribers", len(subs)))
}
