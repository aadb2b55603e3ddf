package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
	messagesvc "github.com/mrsanskar19/self-transfer/internal/services/messages"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

// Sweeper periodically removes expired messages through the message
// service so removals are broadcast like any other delete.
type Sweeper struct {
	svc      *messagesvc.Service
	interval time.Duration
	cron     string
	logger   logpkg.Logger
}

// New builds a sweeper. A non-empty cron expression takes precedence over
// the interval and must be valid gronx syntax.
func New(svc *messagesvc.Service, interval time.Duration, cron string, logger logpkg.Logger) (*Sweeper, error) {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	if cron != "" && !gronx.IsValid(cron) {
		return nil, fmt.Errorf("invalid sweep cron expression: %s", cron)
	}
	if cron == "" && interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		svc:      svc,
		interval: interval,
		cron:     cron,
		logger:   logger.WithComponent("sweep"),
	}, nil
}

// RunOnce performs a single sweep pass.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	return s.svc.SweepExpired(ctx, time.Now())
}

// Run blocks until ctx is canceled, sweeping on the configured schedule.
// Sweep errors are logged and the loop keeps going.
func (s *Sweeper) Run(ctx context.Context) {
	if s.cron != "" {
		s.logger.Info("sweeper started", logpkg.Str("cron", s.cron))
		s.runCron(ctx)
		return
	}
	s.logger.Info("sweeper started", logpkg.Dur("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopping")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.Error("sweep failed", logpkg.Err(err))
			}
		}
	}
}

// runCron sleeps until the next cron tick and sweeps, repeating until ctx
// is canceled.
func (s *Sweeper) runCron(ctx context.Context) {
	for {
		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(s.cron, now, false)
		if err != nil {
			s.logger.Error("cron tick computation failed", logpkg.Str("cron", s.cron), logpkg.Err(err))
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				s.logger.Info("sweeper stopping")
				return
			}
			continue
		}
		wait := time.Until(next)
		if wait < time.Second {
			wait = time.Second
		}
		select {
		case <-time.After(wait):
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.Error("sweep failed", logpkg.Err(err))
			}
		case <-ctx.Done():
			s.logger.Info("sweeper stopping")
			return
		}
	}
}
