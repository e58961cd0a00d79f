package infra

import (
	"context"
	"errors"

	accountrepo "github.com/amirasaad/fintech-ledger/infra/repository/account"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	"github.com/amirasaad/fintech-ledger/pkg/repository/account"
	"gorm.io/gorm"
)

// UoW is the gorm unit of work for the account store. Outside Do its
// repositories run on the pool; inside Do they share the transaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a database transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository returns an account repository bound to the current session.
func (u *UoW) AccountRepository() (account.Repository, error) {
	session, err := u.session()
	if err != nil {
		return nil, err
	}
	return accountrepo.New(session), nil
}

// JournalRepository returns a mutation journal bound to the current session.
func (u *UoW) JournalRepository() (account.Journal, error) {
	session, err := u.session()
	if err != nil {
		return nil, err
	}
	return accountrepo.NewJournal(session), nil
}

func (u *UoW) session() (*gorm.DB, error) {
	if u.tx != nil {
		return u.tx, nil
	}
	if u.db == nil {
		return nil, errors.New("unit of work has no database session")
	}
	return u.db, nil
}
