package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/pkg/config"
)

type countingRemoteWriter struct {
	calls atomic.Int32
}

func (c *countingRemoteWriter) Upsert(_ context.Context, _, _ string, _ interface{}) error {
	c.calls.Add(1)
	return nil
}

func TestPushSchedulerTriggerRunsPush(t *testing.T) {
	remote := &countingRemoteWriter{}
	store := &mockProgressStore{pending: []models.ProgressRecord{pendingRecord("r1")}}
	sync := NewSyncService(remote, store, nil, zap.NewNop())

	scheduler := NewPushScheduler(sync, config.SyncConfig{QueueWorkers: 1, RetryDelay: 10 * time.Millisecond}, zap.NewNop())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	scheduler.TriggerPush()
	assert.Eventually(t, func() bool { return remote.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPushSchedulerDropsTriggerWhenStopped(t *testing.T) {
	sync := NewSyncService(&countingRemoteWriter{}, &mockProgressStore{}, nil, zap.NewNop())
	scheduler := NewPushScheduler(sync, config.SyncConfig{}, zap.NewNop())

	// Never started: the trigger is dropped, not fatal.
	scheduler.TriggerPush()
}
