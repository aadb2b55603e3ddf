package messagesvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mrsanskar19/self-transfer/internal/broadcast"
	"github.com/mrsanskar19/self-transfer/internal/runtime"
	"github.com/mrsanskar19/self-transfer/internal/store"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

// ErrInvalidInput marks client-side validation failures. Transports map it
// to a 400.
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	rt     *runtime.Runtime
	bc     *broadcast.Broadcaster
	logger logpkg.Logger
}

func New(rt *runtime.Runtime, bc *broadcast.Broadcaster, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Service{rt: rt, bc: bc, logger: logger.WithComponent("messages")}
}

func (s *Service) validate(m store.Message) error {
	if strings.TrimSpace(m.UserID) == "" {
		return fmt.Errorf("%w: author userId is required", ErrInvalidInput)
	}
	switch m.Type {
	case store.TypeText:
		if m.Content == "" {
			return fmt.Errorf("%w: text message requires content", ErrInvalidInput)
		}
	case store.TypeFile:
		if m.Name == "" {
			return fmt.Errorf("%w: file message requires a name", ErrInvalidInput)
		}
		if m.URL == "" {
			return fmt.Errorf("%w: file message requires a data URL", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown message type %q", ErrInvalidInput, m.Type)
	}
	if max := s.rt.Config().MaxPayloadBytes; max > 0 {
		if len(m.Content)+len(m.URL) > max {
			return fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidInput, max)
		}
	}
	return nil
}

// Create validates and appends a message, then broadcasts an add event. The
// returned message follows list-view policy: file payload URL stripped,
// shareable URL present.
func (s *Service) Create(ctx context.Context, m store.Message) (store.Message, error) {
	if err := s.validate(m); err != nil {
		return store.Message{}, err
	}
	stored, err := s.rt.Store().AppendMessage(m)
	if err != nil {
		return store.Message{}, err
	}
	s.bc.Broadcast(broadcast.AddEvent(stored))
	mutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info("message created",
		logpkg.Str("id", stored.ID),
		logpkg.Str("type", stored.Type),
		logpkg.Str("user", stored.UserID))
	return stored.WithoutURL(), nil
}

// List returns messages in creation order with payload URLs stripped. When
// sweep-on-list is enabled, expired records are removed first so a reader
// never sees them.
func (s *Service) List(ctx context.Context, filter store.ListFilter) ([]store.Message, error) {
	if s.rt.Config().Sweep.OnList {
		if _, err := s.SweepExpired(ctx, time.Now()); err != nil {
			s.logger.Warn("sweep on list failed", logpkg.Err(err))
		}
	}
	return s.rt.Store().ListMessages(filter)
}

// Get returns the full record including the raw payload URL.
func (s *Service) Get(ctx context.Context, id string) (store.Message, error) {
	return s.rt.Store().GetMessage(id)
}

// Consume fetches a file message and deletes it in the same call. The
// shareable link is one-time: a second request observes not-found.
func (s *Service) Consume(ctx context.Context, id string) (store.Message, error) {
	m, err := s.rt.Store().GetMessage(id)
	if err != nil {
		return store.Message{}, err
	}
	if err := s.rt.Store().DeleteMessage(id); err != nil {
		return store.Message{}, err
	}
	s.bc.Broadcast(broadcast.DeleteEvent(id))
	mutationsTotal.WithLabelValues("consume").Inc()
	s.logger.Info("message consumed", logpkg.Str("id", id))
	return m, nil
}

// MarkSeen records the viewer on the message. The seen event is broadcast
// only when the viewer was not already present.
func (s *Service) MarkSeen(ctx context.Context, id, viewer string) (store.Message, error) {
	m, changed, err := s.rt.Store().MarkSeen(id, viewer)
	if err != nil {
		return store.Message{}, err
	}
	if changed {
		s.bc.Broadcast(broadcast.SeenEvent(id, viewer))
		mutationsTotal.WithLabelValues("seen").Inc()
	}
	return m.WithoutURL(), nil
}

// Delete removes a message and broadcasts a delete event.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.rt.Store().DeleteMessage(id); err != nil {
		return err
	}
	s.bc.Broadcast(broadcast.DeleteEvent(id))
	mutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info("message deleted", logpkg.Str("id", id))
	return nil
}

// SweepExpired deletes every message older than the configured TTL as of
// now and broadcasts a delete event per removal. Returns the removal count.
// Individual delete failures are logged and skipped so one bad record does
// not stall the sweep.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.rt.Store().ExpiredMessages(now, s.rt.Config().MessageTTL())
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, m := range expired {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if err := s.rt.Store().DeleteMessage(m.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			s.logger.Warn("sweep delete failed", logpkg.Str("id", m.ID), logpkg.Err(err))
			continue
		}
		s.bc.Broadcast(broadcast.DeleteEvent(m.ID))
		sweptTotal.Inc()
		removed++
	}
	if removed > 0 {
		s.logger.Info("expired messages swept", logpkg.Int("removed", removed))
	}
	return removed, nil
}
