package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/airisk/pkg/utils/async"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
)

// Sweeper drops expired entries from an in-process cache
type Sweeper interface {
	Sweep(now time.Time) int
}

// CacheSweepWorker periodically sweeps expired entries. It assumes a single
// server instance owning the cache.
type CacheSweepWorker struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewCacheSweepWorker(sweeper Sweeper, interval time.Duration) *CacheSweepWorker {
	return &CacheSweepWorker{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the sweep loop in the background. The loop ends on Stop or
// when ctx is cancelled.
func (w *CacheSweepWorker) Start(ctx context.Context) {
	logging.Default().Info("Cache sweep worker starting", "interval", w.interval.String())

	async.Dispatch(ctx, func(context.Context) error {
		w.run(ctx)
		return nil
	})
}

// Stop signals the worker to stop and waits for completion
func (w *CacheSweepWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Cache sweep worker stopped")
}

func (w *CacheSweepWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := w.sweeper.Sweep(w.now()); n > 0 {
				logging.Default().Debug("Swept expired cache entries", "count", n)
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}
