package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// Repository defines ledger entry persistence for the transaction service.
type Repository interface {
	// Create inserts a new entry.
	Create(ctx context.Context, e *ledger.Entry) error

	// Get retrieves an entry by its ID, or domain.ErrTransactionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*ledger.Entry, error)

	// ListByAccount lists entries where the account is source or recipient, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error)

	// Transition moves a PENDING entry to a terminal status. An entry that is
	// no longer PENDING yields domain.ErrInvalidStatusTransition.
	Transition(ctx context.Context, id uuid.UUID, to ledger.Status, reason string) error

	// ClaimStale claims up to limit PENDING entries created before olderThan
	// whose next reconcile time has passed. Claimed entries have their attempt
	// counter bumped and are hidden from other claimers for lease.
	ClaimStale(
		ctx context.Context,
		now, olderThan time.Time,
		lease time.Duration,
		limit int,
	) ([]*ledger.Entry, error)

	// Reschedule sets when a PENDING entry becomes claimable again.
	Reschedule(ctx context.Context, id uuid.UUID, next time.Time) error
}
