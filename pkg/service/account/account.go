// Package account provides the account service operations: opening accounts
// and reading them back. Balances are never changed here; see package balance.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	"github.com/amirasaad/fintech-ledger/pkg/utils"
	"github.com/google/uuid"
)

// maxNumberAttempts bounds the retries on an account number collision.
const maxNumberAttempts = 5

// Service provides account opening and lookup.
type Service struct {
	uow            repository.UnitOfWork
	logger         *slog.Logger
	numberProvider func() (string, error)
}

// New creates a new Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:            uow,
		logger:         logger,
		numberProvider: utils.GenerateAccountNumber,
	}
}

// WithNumberProvider replaces the account number generator.
func (s *Service) WithNumberProvider(fn func() (string, error)) *Service {
	s.numberProvider = fn
	return s
}

// CreateAccount opens an ACTIVE account with a zero balance and a random
// 10-digit number for the owner.
func (s *Service) CreateAccount(
	ctx context.Context,
	create dto.AccountCreate,
) (*account.Account, error) {
	logger := s.logger.With(
		"ownerID", create.OwnerID,
		"type", create.Type,
		"currency", create.Currency,
	)
	logger.Info("CreateAccount started")

	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number, err := s.numberProvider()
		if err != nil {
			logger.Error("CreateAccount failed: number generation", "error", err)
			return nil, err
		}
		a, err := account.New().
			WithOwnerID(create.OwnerID).
			WithType(account.Type(create.Type)).
			WithCurrency(create.Currency).
			WithNumber(number).
			Build()
		if err != nil {
			logger.Error("CreateAccount failed: domain error", "error", err)
			return nil, err
		}

		err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			return repo.Create(ctx, a)
		})
		if err == nil {
			logger.Info("CreateAccount successful", "accountID", a.ID, "number", a.Number)
			return a, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			logger.Error("CreateAccount failed: repository error", "error", err)
			return nil, storageErr(err)
		}
		logger.Warn("CreateAccount number collision, retrying", "attempt", attempt)
	}
	logger.Error("CreateAccount failed: no free account number", "attempts", maxNumberAttempts)
	return nil, fmt.Errorf(
		"%w: no free account number after %d attempts",
		domain.ErrStorageFailure,
		maxNumberAttempts,
	)
}

// GetAccount returns one account, or domain.ErrAccountNotFound.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	logger := s.logger.With("accountID", id)
	logger.Debug("GetAccount started")
	var a *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		logger.Error("GetAccount failed", "error", err)
		return nil, storageErr(err)
	}
	return a, nil
}

// ListAccounts returns the owner's accounts. An owner with no accounts yields
// domain.ErrAccountNotFound.
func (s *Service) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	logger := s.logger.With("ownerID", ownerID)
	logger.Debug("ListAccounts started")
	var accounts []*account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.ListByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		logger.Error("ListAccounts failed", "error", err)
		return nil, storageErr(err)
	}
	if len(accounts) == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return accounts, nil
}

// storageErr passes known domain errors through and wraps anything else as a
// storage failure.
func storageErr(err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrStorageFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
}
