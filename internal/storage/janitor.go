package storage

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cleaner removes staged files older than a given age.
type Cleaner interface {
	CleanupOlderThan(maxAge time.Duration) (int, error)
}

// Janitor periodically removes expired staged files.
type Janitor struct {
	store    Cleaner
	interval time.Duration
	ttl      time.Duration
	logger   *zap.Logger

	// OnCleaned is called with the number of files removed by each sweep
	// that removed at least one file.
	OnCleaned func(n int)
}

// NewJanitor creates a janitor sweeping store every interval.
func NewJanitor(store Cleaner, interval, ttl time.Duration, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Janitor{
		store:    store,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

// Run sweeps until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep runs one cleanup pass and returns the number of files removed.
func (j *Janitor) Sweep() int {
	n, err := j.store.CleanupOlderThan(j.ttl)
	if err != nil {
		j.logger.Warn("staging cleanup incomplete", zap.Int("removed", n), zap.Error(err))
	}
	if n > 0 {
		j.logger.Info("staging cleanup", zap.Int("removed", n), zap.Duration("ttl", j.ttl))
		if j.OnCleaned != nil {
			j.OnCleaned(n)
		}
	}
	return n
}
