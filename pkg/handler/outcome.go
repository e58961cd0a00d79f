// Package handler holds the event bus consumers of the transaction service.
package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/amirasaad/fintech-ledger/pkg/eventbus"
)

// OutcomeLog records every ledger outcome event in the audit log.
func OutcomeLog(logger *slog.Logger) eventbus.HandlerFunc {
	return func(_ context.Context, e events.Event) error {
		switch ev := e.(type) {
		case *events.EntryCompleted:
			logger.Info("✅ ledger entry completed",
				"entryID", ev.EntryID,
				"referenceID", ev.ReferenceID,
				"accountID", ev.AccountID,
				"type", ev.TransactionType,
				"amount", ev.Amount,
				"currency", ev.Currency,
			)
		case *events.EntryFailed:
			logger.Warn("❌ ledger entry failed",
				"entryID", ev.EntryID,
				"referenceID", ev.ReferenceID,
				"accountID", ev.AccountID,
				"type", ev.TransactionType,
				"amount", ev.Amount,
				"reason", ev.Reason,
			)
		default:
			return fmt.Errorf("unexpected event type %T", e)
		}
		return nil
	}
}

// RegisterOutcomeHandlers subscribes the audit log to both outcome events.
func RegisterOutcomeHandlers(bus eventbus.Bus, logger *slog.Logger) *IdempotencyTracker {
	tracker := NewIdempotencyTracker()
	h := WithIdempotency(OutcomeLog(logger), tracker, ByEventID, "OutcomeLog", logger)
	bus.Register(events.EventTypeEntryCompleted, h)
	bus.Register(events.EventTypeEntryFailed, h)
	return tracker
}
