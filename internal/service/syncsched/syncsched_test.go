package syncsched

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"datasync-console/internal/domain"
	"datasync-console/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRunner_RecordsOutcome(t *testing.T) {
	calls := 0
	backend := &testutil.MockBackend{
		SyncMetadataFn: func(_ context.Context) (*domain.SyncResponse, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("catalog pg unreachable")
			}
			return &domain.SyncResponse{Status: "success", Message: "Metadata sync completed successfully"}, nil
		},
	}
	r := NewRunner(backend, discardLogger())

	_, ok := r.Last()
	assert.False(t, ok)

	out := r.Run(context.Background(), TriggerManual)
	require.True(t, out.OK())
	assert.Equal(t, "Metadata sync completed successfully", out.Message)
	assert.Equal(t, domain.SyncSuccessMessage, out.Banner())

	out = r.Run(context.Background(), TriggerManual)
	require.False(t, out.OK())
	assert.Equal(t, "Metadata sync failed: catalog pg unreachable", out.Banner())

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, TriggerManual, last.Trigger)
	assert.False(t, last.OK())
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(NewRunner(&testutil.MockBackend{}, discardLogger()), "every tuesday", time.Second, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sync schedule")
}

func TestScheduler_RunsOnScheduleAndStopsCleanly(t *testing.T) {
	var calls atomic.Int32
	backend := &testutil.MockBackend{
		SyncMetadataFn: func(_ context.Context) (*domain.SyncResponse, error) {
			calls.Add(1)
			return &domain.SyncResponse{Status: "success"}, nil
		},
	}
	runner := NewRunner(backend, discardLogger())
	s, err := NewScheduler(runner, "@every 1s", 5*time.Second, discardLogger())
	require.NoError(t, err)

	assert.True(t, s.Next().IsZero())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.Next().IsZero())

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)

	s.Stop()
	s.Stop()

	last, ok := runner.Last()
	require.True(t, ok)
	assert.Equal(t, TriggerScheduled, last.Trigger)
}
