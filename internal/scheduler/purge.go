package scheduler

import (
	"context"
	"time"

	"github.com/filippkowalski/heywish/internal/logger"
)

const (
	// DefaultPurgeThreshold is how long a soft-deleted row survives before
	// the purger removes it for good.
	DefaultPurgeThreshold = 30 * 24 * time.Hour
)

// PurgeStore deletes soft-deleted rows older than the cutoff and reports
// how many rows went away.
type PurgeStore interface {
	PurgeDeleted(ctx context.Context, olderThan time.Time) (int64, error)
}

// Purger periodically hard-deletes rows whose soft-delete marker is older
// than the threshold. Until then a delete is recoverable by support.
type Purger struct {
	store     PurgeStore
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewPurger creates a new purger.
func NewPurger(store PurgeStore, log logger.Logger, interval, threshold time.Duration) *Purger {
	if threshold == 0 {
		threshold = DefaultPurgeThreshold
	}
	return &Purger{
		store:     store,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic purge process.
func (p *Purger) Start(ctx context.Context) error {
	// Run immediately on start
	if err := p.Purge(ctx); err != nil {
		p.logger.Warn("initial purge failed", logger.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.Purge(ctx); err != nil {
					p.logger.Error("purge failed", logger.Error(err))
				}
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the purger.
func (p *Purger) Stop() {
	close(p.stopCh)
}

// Purge removes rows soft-deleted before now minus the threshold.
func (p *Purger) Purge(ctx context.Context) error {
	cutoff := time.Now().Add(-p.threshold)

	deleted, err := p.store.PurgeDeleted(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		p.logger.Info("purge completed",
			logger.Int64("rows_deleted", deleted),
			logger.Time("cutoff", cutoff))
	} else {
		p.logger.Debug("nothing to purge")
	}
	return nil
}
