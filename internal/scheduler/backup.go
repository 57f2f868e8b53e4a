// Package scheduler runs the periodic automatic backup.
package scheduler

import (
	"context"
	"time"

	"github.com/anhdng/songngu/internal/backup"
	"github.com/anhdng/songngu/internal/logger"
)

// DefaultBackupInterval is how often an automatic backup is taken.
const DefaultBackupInterval = 6 * time.Hour

// BackupScheduler takes periodic automatic backups and lets callers
// trigger one out of band.
type BackupScheduler struct {
	manager  *backup.Manager
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	manualCh chan chan error
}

// NewBackupScheduler creates a backup scheduler.
func NewBackupScheduler(manager *backup.Manager, log logger.Logger, interval time.Duration) *BackupScheduler {
	if interval <= 0 {
		interval = DefaultBackupInterval
	}
	return &BackupScheduler{
		manager:  manager,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		manualCh: make(chan chan error),
	}
}

// Start begins the periodic backup loop.
func (bs *BackupScheduler) Start(ctx context.Context) error {
	// Take one backup immediately so a fresh deployment is covered
	// before the first tick.
	if err := bs.run(ctx); err != nil {
		bs.logger.Warn("initial automatic backup failed", logger.Error(err))
	}

	ticker := time.NewTicker(bs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := bs.run(ctx); err != nil {
					bs.logger.Error("automatic backup failed", logger.Error(err))
				}
			case done := <-bs.manualCh:
				done <- bs.run(ctx)
			case <-bs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the scheduler.
func (bs *BackupScheduler) Stop() {
	close(bs.stopCh)
}

// TriggerNow requests an immediate backup and waits for its result.
func (bs *BackupScheduler) TriggerNow() error {
	done := make(chan error, 1)
	select {
	case bs.manualCh <- done:
		return <-done
	case <-bs.stopCh:
		return context.Canceled
	}
}

func (bs *BackupScheduler) run(ctx context.Context) error {
	info, err := bs.manager.CreateBackup(ctx, backup.ReasonAuto)
	if err != nil {
		return err
	}
	bs.logger.Info("automatic backup taken",
		logger.String("key", info.Key),
		logger.Int("size", info.Size))
	return nil
}
