package broadcast

import (
	"sync"

	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

// Registry tracks currently connected subscribers. Process-lifetime only,
// no persistence. Safe for concurrent register/unregister/iterate.
type Registry struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	logger logpkg.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger logpkg.Logger) *Registry {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Registry{
		subs:   make(map[*Subscriber]struct{}),
		logger: logger.WithComponent("registry"),
	}
}

// Register adds a subscriber. Idempotent.
func (r *Registry) Register(s *Subscriber) {
	r.mu.Lock()
	if _, ok := r.subs[s]; ok {
		r.mu.Unlock()
		return
	}
	r.subs[s] = struct{}{}
	n := len(r.subs)
	r.mu.Unlock()
	subscribersGauge.Set(float64(n))
	r.logger.Debug("subscriber registered", logpkg.Str("subscriber", s.ID()), logpkg.Int("total", n))
}

// Unregister removes a subscriber and marks it dead. Unregistering an
// absent handle is a no-op.
func (r *Registry) Unregister(s *Subscriber) {
	r.mu.Lock()
	_, ok := r.subs[s]
	if ok {
		delete(r.subs, s)
	}
	n := len(r.subs)
	r.mu.Unlock()
	if !ok {
		return
	}
	s.close()
	subscribersGauge.Set(float64(n))
	r.logger.Debug("subscriber unregistered", logpkg.Str("subscriber", s.ID()), logpkg.Int("total", n))
}

// Snapshot returns the current subscriber set for iteration. Entries may be
// unregistered concurrently; delivery to a dead entry simply fails.
func (r *Registry) Snapshot() []*Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Subscriber, 0, len(r.subs))
	for s := range r.subs {
		out = append(out, s)
	}
	return out
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
