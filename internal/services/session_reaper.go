package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// staleSessionCloser is implemented by repository.StudySessionRepo.
type staleSessionCloser interface {
	CloseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// SessionReaper ends study sessions whose heartbeats stopped arriving.
// Clients heartbeat while a study run is open; anything idle past the timeout
// is considered abandoned.
type SessionReaper struct {
	repo        staleSessionCloser
	idleTimeout time.Duration
	interval    time.Duration
	logger      *zap.Logger
	stopChan    chan struct{}
}

func NewSessionReaper(repo staleSessionCloser, idleTimeout, interval time.Duration, logger *zap.Logger) *SessionReaper {
	return &SessionReaper{
		repo:        repo,
		idleTimeout: idleTimeout,
		interval:    interval,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

func (s *SessionReaper) Start() {
	if s.repo == nil {
		return
	}

	go s.loop()
	s.logger.Info("session reaper started",
		zap.Duration("idle_timeout", s.idleTimeout),
		zap.Duration("interval", s.interval),
	)
}

func (s *SessionReaper) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *SessionReaper) loop() {
	// Run on startup as well as by interval.
	s.reap()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.reap()
		}
	}
}

func (s *SessionReaper) reap() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	closed, err := s.repo.CloseStale(ctx, s.idleTimeout)
	if err != nil {
		s.logger.Error("failed to close stale sessions", zap.Error(err))
		return
	}
	if closed > 0 {
		s.logger.Info("closed stale study sessions", zap.Int64("count", closed))
	}
}
