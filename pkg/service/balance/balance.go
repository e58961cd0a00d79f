// Package balance implements the balance mutation operation of the account
// service. It is the only code path that changes an account balance.
package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	"github.com/google/uuid"
)

// Service applies balance mutations against the account store.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new balance Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Apply performs a deposit, withdrawal or transfer in a single storage
// transaction. Business failures are reported in the result with a reason
// code and a nil error; the error is reserved for storage failures.
//
// When the mutation carries a reference id, the outcome is journaled and a
// repeated reference returns the recorded outcome without touching balances.
func (s *Service) Apply(ctx context.Context, m dto.BalanceMutation) (*dto.MutationResult, error) {
	m.Currency = strings.ToUpper(strings.TrimSpace(m.Currency))
	if m.Currency == "" {
		m.Currency = ledger.DefaultCurrency
	}
	logger := s.logger.With(
		"accountID", m.AccountID,
		"type", m.TransactionType,
		"amount", m.Amount,
		"currency", m.Currency,
		"referenceID", m.ReferenceID,
	)
	logger.Info("Apply started")

	if err := ledger.ValidateRequest(
		m.AccountID,
		m.TransactionType,
		m.Amount,
		m.RecipientAccountID,
	); err != nil {
		logger.Warn("Apply rejected: invalid request", "error", err)
		return s.reject(ctx, m, err)
	}

	var result *dto.MutationResult
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		journal, err := uow.JournalRepository()
		if err != nil {
			return err
		}

		ids := []uuid.UUID{m.AccountID}
		if m.RecipientAccountID != nil {
			ids = append(ids, *m.RecipientAccountID)
		}
		locked, err := repo.GetForUpdate(ctx, ids...)
		if err != nil {
			return err
		}

		if m.ReferenceID != nil {
			recorded, err := journal.GetOutcome(ctx, *m.ReferenceID)
			switch {
			case err == nil:
				result = replay(recorded)
				return nil
			case !errors.Is(err, domain.ErrNotFound):
				return err
			}
		}

		if err := check(m, locked); err != nil {
			return err
		}

		if m.TransactionType.Debits() {
			if err := repo.Debit(ctx, m.AccountID, m.Amount); err != nil {
				return err
			}
		}
		switch m.TransactionType {
		case ledger.Deposit:
			err = repo.Credit(ctx, m.AccountID, m.Amount)
		case ledger.Transfer:
			err = repo.Credit(ctx, *m.RecipientAccountID, m.Amount)
			if errors.Is(err, domain.ErrAccountNotFound) {
				err = domain.ErrRecipientNotFound
			}
		}
		if err != nil {
			return err
		}

		if m.ReferenceID != nil {
			if err := journal.RecordOutcome(ctx, &dto.MutationOutcome{
				ReferenceID: *m.ReferenceID,
				AccountID:   m.AccountID,
				Outcome:     dto.OutcomeApplied,
				CreatedAt:   time.Now().UTC(),
			}); err != nil {
				return err
			}
		}
		result = &dto.MutationResult{Success: true}
		return nil
	})

	switch {
	case err == nil:
		if result.Success {
			logger.Info("Apply successful")
		} else {
			logger.Info("Apply replayed recorded outcome", "reason", result.Reason)
		}
		return result, nil
	case errors.Is(err, domain.ErrAlreadyExists) && m.ReferenceID != nil:
		// Another request recorded this reference first.
		logger.Warn("Apply lost race on reference, replaying")
		return s.recorded(ctx, *m.ReferenceID)
	}

	if _, ok := domain.ReasonFor(err); ok {
		logger.Warn("Apply rejected", "error", err)
		return s.reject(ctx, m, err)
	}
	logger.Error("Apply failed", "error", err)
	return nil, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
}

// Resolve returns the recorded outcome for a reference. When nothing has been
// recorded yet, the reference is fenced with a VOIDED outcome first so a
// delayed mutation carrying it can never apply afterwards.
func (s *Service) Resolve(ctx context.Context, referenceID uuid.UUID) (*dto.MutationOutcome, error) {
	logger := s.logger.With("referenceID", referenceID)
	logger.Info("Resolve started")

	var outcome *dto.MutationOutcome
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		journal, err := uow.JournalRepository()
		if err != nil {
			return err
		}
		outcome, err = journal.GetOutcome(ctx, referenceID)
		if err == nil || !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		outcome = &dto.MutationOutcome{
			ReferenceID: referenceID,
			Outcome:     dto.OutcomeVoided,
			Reason:      domain.ReasonMutationVoided,
			CreatedAt:   time.Now().UTC(),
		}
		return journal.RecordOutcome(ctx, outcome)
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		outcome, err = s.lookup(ctx, referenceID)
	}
	if err != nil {
		logger.Error("Resolve failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	logger.Info("Resolve successful", "outcome", outcome.Outcome)
	return outcome, nil
}

// check enforces the business rules on the locked rows. The recipient is
// verified before anything is debited. Amounts are never converted: the
// mutation currency must be the currency of every account it touches.
func check(m dto.BalanceMutation, locked map[uuid.UUID]*account.Account) error {
	source, ok := locked[m.AccountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	touched := []*account.Account{source}
	if m.TransactionType == ledger.Transfer {
		recipient, ok := locked[*m.RecipientAccountID]
		if !ok {
			return domain.ErrRecipientNotFound
		}
		touched = append(touched, recipient)
	}

	for _, a := range touched {
		if !a.IsActive() {
			return domain.ErrAccountNotActive
		}
	}
	for _, a := range touched {
		if a.Currency != m.Currency {
			return domain.ErrCurrencyMismatch
		}
	}
	if m.TransactionType.Debits() {
		return source.ValidateDebit(m.Amount)
	}
	return source.ValidateCredit(m.Amount)
}

// reject journals a business failure in its own short transaction and turns
// it into a result.
func (s *Service) reject(
	ctx context.Context,
	m dto.BalanceMutation,
	cause error,
) (*dto.MutationResult, error) {
	reason, ok := domain.ReasonFor(cause)
	if !ok {
		reason = domain.ReasonRejected
	}
	if m.ReferenceID == nil {
		return &dto.MutationResult{Success: false, Reason: reason}, nil
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		journal, err := uow.JournalRepository()
		if err != nil {
			return err
		}
		return journal.RecordOutcome(ctx, &dto.MutationOutcome{
			ReferenceID: *m.ReferenceID,
			AccountID:   m.AccountID,
			Outcome:     dto.OutcomeRejected,
			Reason:      reason,
			CreatedAt:   time.Now().UTC(),
		})
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		return s.recorded(ctx, *m.ReferenceID)
	case err != nil:
		s.logger.Warn("recording rejected outcome failed",
			"referenceID", *m.ReferenceID,
			"reason", reason,
			"error", err,
		)
	}
	return &dto.MutationResult{Success: false, Reason: reason}, nil
}

// recorded reads the journal entry for a reference and returns it as a result.
func (s *Service) recorded(ctx context.Context, referenceID uuid.UUID) (*dto.MutationResult, error) {
	o, err := s.lookup(ctx, referenceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	return replay(o), nil
}

func (s *Service) lookup(ctx context.Context, referenceID uuid.UUID) (o *dto.MutationOutcome, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		journal, err := uow.JournalRepository()
		if err != nil {
			return err
		}
		o, err = journal.GetOutcome(ctx, referenceID)
		return err
	})
	return
}

func replay(o *dto.MutationOutcome) *dto.MutationResult {
	r := o.Result()
	if o.Outcome == dto.OutcomeVoided && r.Reason == "" {
		r.Reason = domain.ReasonMutationVoided
	}
	return r
}
