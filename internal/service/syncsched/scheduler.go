package syncsched

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers a Runner on a cron schedule.
type Scheduler struct {
	runner   *Runner
	schedule string
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	entry   cron.EntryID
	cancel  context.CancelFunc
	started bool
}

// NewScheduler validates schedule and returns a stopped Scheduler. Each
// scheduled sync is bounded by timeout.
func NewScheduler(runner *Runner, schedule string, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", schedule, err)
	}
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// Start registers the schedule and starts the cron loop. Calling Start on a
// running Scheduler is a no-op. Scheduled syncs stop when ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New()
	entry, err := c.AddFunc(s.schedule, func() {
		jobCtx, jobCancel := context.WithTimeout(runCtx, s.timeout)
		defer jobCancel()
		s.runner.Run(jobCtx, TriggerScheduled)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("schedule sync: %w", err)
	}
	c.Start()

	s.cron, s.entry, s.cancel, s.started = c, entry, cancel, true
	s.logger.InfoContext(ctx, "sync scheduler started", "schedule", s.schedule)
	return nil
}

// Next returns the next scheduled run, or the zero time when stopped.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

// Stop halts the cron loop and waits for a running sync to finish.
// Calling Stop on a stopped Scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	c, cancel := s.cron, s.cancel
	s.started = false
	s.mu.Unlock()

	cancel()
	<-c.Stop().Done()
	s.logger.Info("sync scheduler stopped")
}
