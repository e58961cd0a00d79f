// Package processor runs background work of the transaction service.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Reconciler finalizes stale PENDING ledger entries in sweeps.
type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// ReconcileProcessor runs reconcile sweeps on a fixed interval.
type ReconcileProcessor struct {
	reconciler Reconciler
	interval   time.Duration
	logger     *slog.Logger
}

// NewReconcileProcessor creates a processor sweeping every interval, which
// must be positive.
func NewReconcileProcessor(
	r Reconciler,
	interval time.Duration,
	logger *slog.Logger,
) (*ReconcileProcessor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("reconcile interval must be positive, got %s", interval)
	}
	return &ReconcileProcessor{
		reconciler: r,
		interval:   interval,
		logger:     logger.With("processor", "reconcile"),
	}, nil
}

// Run sweeps once immediately and then on every tick until ctx is done.
// A failed sweep is logged and retried on the next tick.
func (p *ReconcileProcessor) Run(ctx context.Context) {
	p.logger.Info("Reconcile processor started", "interval", p.interval)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.sweep(ctx)
		select {
		case <-ctx.Done():
			p.logger.Info("Reconcile processor stopped")
			return
		case <-ticker.C:
		}
	}
}

func (p *ReconcileProcessor) sweep(ctx context.Context) {
	resolved, err := p.reconciler.Reconcile(ctx)
	if err != nil {
		p.logger.Error("Reconcile sweep failed", "error", err)
		return
	}
	if resolved > 0 {
		p.logger.Info("Reconcile sweep finished", "resolved", resolved)
	}
}
