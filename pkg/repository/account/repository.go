package account

import (
	"context"

	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines account data access. Balance changes go through Debit and
// Credit only; there is no general update.
type Repository interface {
	// Create inserts a new account. A duplicate account number yields domain.ErrAlreadyExists.
	Create(ctx context.Context, a *account.Account) error

	// Get retrieves an account by its ID, or domain.ErrAccountNotFound.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// ListByOwner lists all accounts of a customer.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error)

	// GetForUpdate loads and locks the given accounts for the rest of the
	// transaction. Locks are taken in ascending id order. Missing ids are
	// absent from the returned map.
	GetForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*account.Account, error)

	// Debit subtracts amount only if the balance covers it, otherwise
	// domain.ErrInsufficientFunds is returned and nothing changes.
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	// Credit adds amount to the balance.
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

// Journal records the outcome of each referenced balance mutation.
type Journal interface {
	// GetOutcome returns the recorded outcome, or domain.ErrNotFound.
	GetOutcome(ctx context.Context, referenceID uuid.UUID) (*dto.MutationOutcome, error)

	// RecordOutcome stores an outcome. A reference can only be recorded once;
	// a second attempt yields domain.ErrAlreadyExists.
	RecordOutcome(ctx context.Context, outcome *dto.MutationOutcome) error
}
