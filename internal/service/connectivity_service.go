package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

// ConnectivityService tracks whether the remote backend is reachable. It is
// injected into whatever needs the online flag instead of living in a
// global, and an offline-to-online transition fires the reconnect hook so
// pending records get another push attempt.
type ConnectivityService struct {
	remote      healthChecker
	interval    time.Duration
	metrics     *MetricsService
	logger      *zap.Logger
	online      atomic.Bool
	onReconnect func()

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	done    chan struct{}
}

// NewConnectivityService constructs the watcher. onReconnect may be nil.
func NewConnectivityService(remote healthChecker, interval time.Duration, onReconnect func(), metrics *MetricsService, logger *zap.Logger) *ConnectivityService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectivityService{
		remote:      remote,
		interval:    interval,
		metrics:     metrics,
		logger:      logger,
		onReconnect: onReconnect,
	}
}

// Online reports the last observed connectivity state.
func (s *ConnectivityService) Online() bool {
	return s.online.Load()
}

// Start launches the probe loop. Safe to call once.
func (s *ConnectivityService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.started = true

	go func() {
		defer close(s.done)
		s.probe(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.probe(ctx)
			}
		}
	}()
}

// Stop halts the probe loop and waits for it to exit.
func (s *ConnectivityService) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.mu.Unlock()
	<-done
}

func (s *ConnectivityService) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, s.interval/2)
	defer cancel()

	err := s.remote.Health(probeCtx)
	now := err == nil
	was := s.online.Swap(now)
	s.metrics.SetOnline(now)

	switch {
	case now && !was:
		s.logger.Info("remote backend reachable")
		if s.onReconnect != nil {
			s.onReconnect()
		}
	case !now && was:
		s.logger.Warn("remote backend unreachable", zap.Error(err))
	}
}
