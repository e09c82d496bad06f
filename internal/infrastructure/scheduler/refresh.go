// Package scheduler runs the fixed-interval background refresh used by the
// admin console. The tick callback fires only while its view is active, so
// an idle console issues no backend calls.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotRunning is returned when stopping a refresher that never started.
var ErrNotRunning = errors.New("scheduler: refresher is not running")

// Refresher periodically invokes a refresh callback, gated on view activity.
type Refresher struct {
	interval time.Duration
	active   func() bool
	tick     func(ctx context.Context)
	logger   *zap.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

// NewRefresher creates a refresher. active reports whether the associated
// view is currently visible; tick performs the refresh.
func NewRefresher(interval time.Duration, active func() bool, tick func(ctx context.Context), logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		interval: interval,
		active:   active,
		tick:     tick,
		logger:   logger.Named("refresher"),
	}
}

// Start begins the refresh loop. Starting a running refresher is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = true
	ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	r.wg.Add(1)
	go r.loop(ctx)

	r.logger.Info("Background refresh started", zap.Duration("interval", r.interval))
}

// Stop halts the loop and waits for an in-flight tick to finish.
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return ErrNotRunning
	}
	r.isRunning = false
	cancel := r.cancel
	r.mu.Unlock()

	cancel()
	r.wg.Wait()
	r.logger.Info("Background refresh stopped")
	return nil
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !r.active() {
				continue
			}
			r.tick(ctx)
		}
	}
}
