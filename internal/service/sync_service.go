package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
)

const tableProgress = "progress_records"

type remoteWriter interface {
	Upsert(ctx context.Context, table, conflictKey string, rows interface{}) error
}

type progressStore interface {
	ListPending(ctx context.Context) ([]models.ProgressRecord, error)
	MarkSynced(ctx context.Context, ids []string) error
	CountPending(ctx context.Context) (int, error)
}

// SyncService pushes locally pending progress records to the remote backend
// and marks them synchronized on confirmed success.
type SyncService struct {
	remote   remoteWriter
	progress progressStore
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewSyncService constructs the push pipeline.
func NewSyncService(remote remoteWriter, progress progressStore, metrics *MetricsService, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{remote: remote, progress: progress, metrics: metrics, logger: logger}
}

// PushResult summarises one push run.
type PushResult struct {
	Uploaded int `json:"uploaded"`
	Pending  int `json:"pending"`
}

// Push uploads every pending record. An empty backlog is a no-op that makes
// no remote calls, so a repeat run right after a successful one is free.
// Failures leave sync state untouched: the error is a retry-later signal,
// not a hard fault, and callers must treat it that way.
func (s *SyncService) Push(ctx context.Context) (PushResult, error) {
	pending, err := s.progress.ListPending(ctx)
	if err != nil {
		return PushResult{}, err
	}
	if len(pending) == 0 {
		s.metrics.SetPending(0)
		return PushResult{}, nil
	}

	payload := make([]models.RemoteProgressRecord, len(pending))
	ids := make([]string, len(pending))
	for i, record := range pending {
		payload[i] = record.ForUpload()
		ids[i] = record.ID
	}

	if err := s.remote.Upsert(ctx, tableProgress, "id", payload); err != nil {
		s.metrics.ObservePush(0, false)
		s.metrics.SetPending(len(pending))
		s.logger.Warn("push sync deferred", zap.Int("pending", len(pending)), zap.Error(err))
		return PushResult{Pending: len(pending)}, err
	}

	// Upload confirmed; flip exactly these ids in one batch. If the local
	// flip fails the records stay pending and the next run re-upserts them,
	// which the conflict key makes harmless.
	if err := s.progress.MarkSynced(ctx, ids); err != nil {
		s.metrics.ObservePush(len(ids), false)
		s.logger.Error("uploaded but failed to mark synced", zap.Int("records", len(ids)), zap.Error(err))
		return PushResult{Pending: len(pending)}, err
	}

	s.metrics.ObservePush(len(ids), true)
	s.metrics.SetPending(0)
	s.logger.Info("push sync complete", zap.Int("uploaded", len(ids)))
	return PushResult{Uploaded: len(ids)}, nil
}

// PendingCount reports the current upload backlog.
func (s *SyncService) PendingCount(ctx context.Context) (int, error) {
	count, err := s.progress.CountPending(ctx)
	if err != nil {
		return 0, err
	}
	s.metrics.SetPending(count)
	return count, nil
}
