package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/cenkalti/backoff/v4"
)

// Reconcile runs one sweep over stale PENDING entries and returns how many
// were finalized. For each claimed entry the account service is asked what
// happened to its reference; an unrecorded reference is fenced there, so the
// answer is always final. Entries whose outcome cannot be learned are
// rescheduled with exponential backoff and stay PENDING.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	now := s.now()
	rc := s.reconcile
	claimed, err := s.repo.ClaimStale(ctx, now, now.Add(-rc.StaleAfter), rc.Lease, rc.BatchSize)
	if err != nil {
		s.logger.Error("Reconcile failed: claiming stale entries", "error", err)
		return 0, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	if len(claimed) == 0 {
		return 0, nil
	}
	s.logger.Info("Reconcile started", "claimed", len(claimed))

	resolved := 0
	for _, entry := range claimed {
		if ctx.Err() != nil {
			break
		}
		logger := s.logger.With("entryID", entry.ID, "referenceID", entry.ReferenceID)

		outcome, err := s.client.ResolveMutation(ctx, entry.ReferenceID)
		if err != nil {
			next := now.Add(s.retryDelay(entry.ReconcileAttempts))
			logger.Warn("Reconcile could not resolve entry, rescheduling",
				"attempts", entry.ReconcileAttempts,
				"next", next,
				"error", err,
			)
			if err := s.repo.Reschedule(ctx, entry.ID, next); err != nil {
				logger.Error("Reconcile reschedule failed", "error", err)
			}
			continue
		}

		to, reason, ok := terminalFor(outcome)
		if !ok {
			logger.Warn("Reconcile got unknown outcome", "outcome", outcome.Outcome)
			continue
		}
		if err := s.finish(ctx, entry, to, reason); err != nil {
			logger.Error("Reconcile failed to finalize entry", "error", err)
			continue
		}
		logger.Info("Reconcile finalized entry", "status", entry.Status, "reason", entry.FailureReason)
		resolved++
	}
	s.logger.Info("Reconcile successful", "claimed", len(claimed), "resolved", resolved)
	return resolved, nil
}

func terminalFor(o *dto.MutationOutcome) (ledger.Status, string, bool) {
	switch o.Outcome {
	case dto.OutcomeApplied:
		return ledger.StatusCompleted, "", true
	case dto.OutcomeRejected:
		if o.Reason == "" {
			return ledger.StatusFailed, domain.ReasonRejected, true
		}
		return ledger.StatusFailed, o.Reason, true
	case dto.OutcomeVoided:
		return ledger.StatusFailed, domain.ReasonMutationVoided, true
	}
	return "", "", false
}

// retryDelay is the wait before the next resolve attempt after attempts
// failed ones: BaseDelay doubled per attempt, capped at MaxDelay.
func (s *Service) retryDelay(attempts int) time.Duration {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     s.reconcile.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         s.reconcile.MaxDelay,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	delay := b.NextBackOff()
	for i := 1; i < attempts; i++ {
		delay = b.NextBackOff()
	}
	return delay
}
