package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrDaemonAlreadyRunning = errors.New("sync: daemon already running")

// Daemon runs the sync cycle on a fixed interval until stopped. A cycle
// failure is logged and the daemon keeps ticking; only Stop or context
// cancellation ends the loop.
type Daemon struct {
	orchestrator *Orchestrator
	interval     time.Duration
	logger       *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewDaemon creates a new Daemon
func NewDaemon(orchestrator *Orchestrator, interval time.Duration, logger *zap.Logger) *Daemon {
	return &Daemon{
		orchestrator: orchestrator,
		interval:     interval,
		logger:       logger,
	}
}

// Start launches the interval loop. The first cycle runs immediately, then
// one cycle per interval.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return ErrDaemonAlreadyRunning
	}
	d.isRunning = true
	d.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.loop(ctx)

	d.logger.Info("Sync daemon started", zap.Duration("interval", d.interval))
	return nil
}

// Stop gracefully stops the daemon, waiting for an in-flight cycle to finish
// or the given context to expire
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false
	d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Sync daemon stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Sync daemon stop timed out")
		return ctx.Err()
	}
}

// loop ticks the sync cycle until the context is cancelled
func (d *Daemon) loop(ctx context.Context) {
	defer d.wg.Done()

	d.runCycle(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.runCycle(ctx)
		}
	}
}

// runCycle runs one cycle, logging rather than propagating failures
func (d *Daemon) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := d.orchestrator.RunOnce(ctx); err != nil {
		d.logger.Error("Sync cycle failed", zap.Error(err))
	}
}
