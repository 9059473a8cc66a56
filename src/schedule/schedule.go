// Package schedule runs the backup sequence on a cron expression for hosts
// without a native scheduler.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Scheduler executes a job on a cron schedule. Overlapping runs are skipped
// rather than queued; the backup directory is shared state and one run at a
// time is the contract.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	logger  *slog.Logger
	job     func(context.Context)
	running atomic.Bool
}

// New validates spec (standard five-field cron syntax) and returns a
// scheduler that invokes job on it.
func New(spec string, logger *slog.Logger, job func(context.Context)) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{cron: cron.New(), spec: spec, logger: logger, job: job}, nil
}

// Start begins scheduling and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.tryRun(ctx) }); err != nil {
		return fmt.Errorf("schedule backup job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", "cron", s.spec)

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) tryRun(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous backup run still in progress, skipping this tick")
		return
	}
	defer s.running.Store(false)
	s.job(ctx)
}
