// Package syncsched runs metadata syncs on demand and on a cron schedule, and
// remembers the last outcome for the inventory banner.
package syncsched

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"datasync-console/internal/domain"
)

// Sync triggers.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// Syncer is the backend call a Runner drives.
type Syncer interface {
	SyncMetadata(ctx context.Context) (*domain.SyncResponse, error)
}

// Runner performs metadata syncs one at a time and records the last outcome.
type Runner struct {
	backend Syncer
	logger  *slog.Logger

	run  sync.Mutex // serializes syncs
	mu   sync.RWMutex
	last *domain.SyncOutcome
}

// NewRunner creates a Runner.
func NewRunner(backend Syncer, logger *slog.Logger) *Runner {
	return &Runner{backend: backend, logger: logger}
}

// Run performs a sync and returns its outcome. Concurrent calls queue.
func (r *Runner) Run(ctx context.Context, trigger string) domain.SyncOutcome {
	r.run.Lock()
	defer r.run.Unlock()

	out := domain.SyncOutcome{Trigger: trigger, Started: time.Now()}
	resp, err := r.backend.SyncMetadata(ctx)
	out.Finished = time.Now()
	if err != nil {
		out.Err = err
		r.logger.WarnContext(ctx, "metadata sync failed", "trigger", trigger, "error", err)
	} else {
		out.Message = resp.Message
		r.logger.InfoContext(ctx, "metadata sync completed",
			"trigger", trigger,
			"duration", out.Finished.Sub(out.Started),
		)
	}

	r.mu.Lock()
	r.last = &out
	r.mu.Unlock()
	return out
}

// Last returns the most recent outcome, if any.
func (r *Runner) Last() (domain.SyncOutcome, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return domain.SyncOutcome{}, false
	}
	return *r.last, true
}
