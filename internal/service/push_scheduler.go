package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/pkg/config"
	"github.com/aventureros/clubsync-api/pkg/jobs"
)

const jobTypePush = "push-sync"

// PushScheduler funnels every push trigger through the background queue:
// session close, reconnect and manual pushes all collapse into queued runs
// instead of racing each other. A failed run is retried by the queue.
type PushScheduler struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewPushScheduler wires the push pipeline onto a jobs queue.
func NewPushScheduler(sync *SyncService, cfg config.SyncConfig, logger *zap.Logger) *PushScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	queue := jobs.NewQueue(jobTypePush, func(ctx context.Context, _ jobs.Job) error {
		_, err := sync.Push(ctx)
		return err
	}, jobs.QueueConfig{
		Workers:    cfg.QueueWorkers,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return &PushScheduler{queue: queue, logger: logger}
}

// Start launches the queue workers.
func (s *PushScheduler) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *PushScheduler) Stop() {
	s.queue.Stop()
}

// TriggerPush enqueues a push run. Best effort: when the queue is saturated
// or stopped the records simply wait for the next trigger.
func (s *PushScheduler) TriggerPush() {
	job := jobs.Job{ID: uuid.NewString(), Type: jobTypePush}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("push trigger dropped", zap.Error(err))
	}
}
