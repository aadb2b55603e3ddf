package broadcast

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber is one live streaming connection. It is created by the
// transport handler on stream-open, registered for the connection lifetime,
// and torn down on disconnect or delivery failure. The registry holds a
// non-owning reference for iteration only.
type Subscriber struct {
	id     string
	ch     chan []byte
	filter celFilter

	closeOnce sync.Once
	done      chan struct{}
}

// NewSubscriber creates a subscriber with a bounded queue of size buf and an
// optional CEL filter expression. A non-empty expression that fails to
// compile is an error.
func NewSubscriber(buf int, filterExpr string) (*Subscriber, error) {
	if buf <= 0 {
		buf = 256
	}
	f, err := newCELFilter(filterExpr)
	if err != nil {
		return nil, err
	}
	return &Subscriber{
		id:     uuid.New().String(),
		ch:     make(chan []byte, buf),
		filter: f,
		done:   make(chan struct{}),
	}, nil
}

// ID returns the subscriber's unique handle id.
func (s *Subscriber) ID() string { return s.id }

// Events is the stream of serialized events to deliver.
func (s *Subscriber) Events() <-chan []byte { return s.ch }

// Done is closed when the subscriber is unregistered (disconnect or kick).
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// offer enqueues a serialized event without blocking. Returns false when the
// subscriber is closed or its queue is full.
func (s *Subscriber) offer(payload []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.ch <- payload:
		return true
	default:
		return false
	}
}

// close marks the subscriber dead. Idempotent; the queue channel itself is
// never closed so concurrent offers stay safe.
func (s *Subscriber) close() {
	s.closeOnce.Do(func() { close(s.done) })
}
