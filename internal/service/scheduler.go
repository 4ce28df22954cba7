package service

import (
	"context"
	"time"

	"wasdash/internal/constants"

	"github.com/sirupsen/logrus"
)

// RetentionStore is the slice of the database the scheduler needs.
type RetentionStore interface {
	DeleteAnalysesOlderThan(ctx context.Context, retentionDays int) (int64, error)
}

// Scheduler periodically removes saved analyses older than the retention
// window. With retention disabled it never deletes anything.
type Scheduler struct {
	store         RetentionStore
	retentionDays int
	intervalHours int
	logger        *logrus.Logger
	stopCh        chan struct{}
}

func NewScheduler(store RetentionStore, retentionDays, intervalHours int, logger *logrus.Logger) *Scheduler {
	if intervalHours <= 0 {
		intervalHours = constants.DefaultCleanupIntervalHours
	}
	return &Scheduler{
		store:         store,
		retentionDays: retentionDays,
		intervalHours: intervalHours,
		logger:        logger,
		stopCh:        make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	if s.retentionDays <= 0 {
		s.logger.Info("Analysis retention disabled, cleanup scheduler not started")
		return
	}

	ticker := time.NewTicker(time.Duration(s.intervalHours) * time.Hour)
	defer ticker.Stop()

	s.logger.Info("Starting cleanup scheduler")

	s.runCleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context cancelled, stopping")
			return
		case <-s.stopCh:
			s.logger.Info("Scheduler stop signal received, stopping")
			return
		case <-ticker.C:
			s.runCleanup(ctx)
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopCh)
}

func (s *Scheduler) runCleanup(ctx context.Context) {
	s.logger.WithField("retentionDays", s.retentionDays).Info("Running scheduled cleanup")

	deleted, err := s.store.DeleteAnalysesOlderThan(ctx, s.retentionDays)
	if err != nil {
		s.logger.WithError(err).Error("Failed to cleanup old analyses")
		return
	}
	s.logger.WithField("deleted", deleted).Info("Successfully completed cleanup")
}
