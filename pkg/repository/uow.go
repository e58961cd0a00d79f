package repository

import (
	"context"

	"github.com/amirasaad/fintech-ledger/pkg/repository/account"
)

// UnitOfWork defines the contract for transactional work on the account store.
//
// Do runs fn inside a single storage transaction. Repositories obtained from the
// UnitOfWork passed to fn are bound to that transaction, so a debit and a credit
// made through them commit or roll back together.
//
// Example usage:
//
//	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
//	    repo, err := uow.AccountRepository()
//	    ...
//	})
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the current transaction.
	AccountRepository() (account.Repository, error)

	// JournalRepository returns the mutation journal bound to the current transaction.
	JournalRepository() (account.Journal, error)
}
