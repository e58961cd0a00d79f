package user

import (
	"context"

	"github.com/amirasaad/fintech-ledger/pkg/domain/user"
	"github.com/google/uuid"
)

// Store is the process-wide identity store. Implementations must be safe
// for concurrent use and release their resources on Close.
type Store interface {
	// Create registers a new user. A taken username yields domain.ErrAlreadyExists.
	Create(ctx context.Context, u *user.User) error

	// GetByUsername retrieves a user, or user.ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*user.User, error)

	// GetByID retrieves a user, or user.ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)

	// Close releases the store.
	Close() error
}
