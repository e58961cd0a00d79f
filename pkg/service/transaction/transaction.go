// Package transaction implements the transaction orchestrator: it records a
// ledger entry, asks the account service to apply the matching balance
// mutation, and moves the entry to its terminal status.
//
// The orchestrator never re-sends a mutation. An entry whose outcome is
// unknown stays PENDING until Reconcile learns the outcome from the account
// service.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/cache"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/eventbus"
	ledgerrepo "github.com/amirasaad/fintech-ledger/pkg/repository/ledger"
	"github.com/google/uuid"
)

// BalanceClient is the account service as seen by the orchestrator.
// Any failure to obtain a business answer is returned as an error wrapping
// domain.ErrTransportFailure.
type BalanceClient interface {
	ApplyMutation(ctx context.Context, m dto.BalanceMutation) (*dto.MutationResult, error)
	ResolveMutation(ctx context.Context, referenceID uuid.UUID) (*dto.MutationOutcome, error)
}

// Deps holds the collaborators of the orchestrator. Bus and Cache are optional.
type Deps struct {
	Repo      ledgerrepo.Repository
	Client    BalanceClient
	Bus       eventbus.Bus
	Cache     cache.EntryCache
	CacheTTL  time.Duration
	Reconcile *config.Reconcile
	Logger    *slog.Logger
}

// Service orchestrates ledger entries and remote balance mutations.
type Service struct {
	repo      ledgerrepo.Repository
	client    BalanceClient
	bus       eventbus.Bus
	cache     cache.EntryCache
	cacheTTL  time.Duration
	reconcile config.Reconcile
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new orchestrator Service.
func New(deps Deps) *Service {
	rc := config.Reconcile{
		StaleAfter: time.Minute,
		Lease:      2 * time.Minute,
		BatchSize:  50,
		BaseDelay:  30 * time.Second,
		MaxDelay:   30 * time.Minute,
	}
	if deps.Reconcile != nil {
		rc = *deps.Reconcile
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      deps.Repo,
		client:    deps.Client,
		bus:       deps.Bus,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
		reconcile: rc,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create records a PENDING entry, applies the balance mutation remotely and
// finalizes the entry.
//
// A business rejection fails the entry and returns the matching domain error.
// A transport failure leaves the entry PENDING and returns an error wrapping
// domain.ErrTransportFailure.
func (s *Service) Create(ctx context.Context, create dto.TransactionCreate) (*ledger.Entry, error) {
	logger := s.logger.With(
		"accountID", create.AccountID,
		"type", create.TransactionType,
		"amount", create.Amount,
	)
	logger.Info("Create started")

	entry, err := ledger.NewEntry(
		create.AccountID,
		create.TransactionType,
		create.Amount,
		create.RecipientAccountID,
		create.Currency,
	)
	if err != nil {
		logger.Warn("Create rejected: invalid request", "error", err)
		return nil, err
	}
	logger = logger.With("entryID", entry.ID, "referenceID", entry.ReferenceID)

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("Create failed: storing pending entry", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}

	result, err := s.client.ApplyMutation(ctx, dto.BalanceMutation{
		AccountID:          entry.AccountID,
		TransactionType:    entry.Type,
		Amount:             entry.Amount,
		Currency:           entry.Currency,
		RecipientAccountID: entry.RecipientAccountID,
		ReferenceID:        &entry.ReferenceID,
	})
	if err != nil {
		logger.Error("Create failed: balance mutation outcome unknown, entry left pending", "error", err)
		if !errors.Is(err, domain.ErrTransportFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
		}
		return nil, fmt.Errorf("entry %s left pending: %w", entry.ID, err)
	}

	if result.Success {
		if err := s.finish(ctx, entry, ledger.StatusCompleted, ""); err != nil {
			logger.Error("Create failed: completing entry", "error", err)
			return nil, err
		}
		logger.Info("Create successful")
		return entry, nil
	}

	reason := result.Reason
	if reason == "" {
		reason = domain.ReasonRejected
	}
	if err := s.finish(ctx, entry, ledger.StatusFailed, reason); err != nil {
		logger.Error("Create failed: failing entry", "reason", reason, "error", err)
		return nil, err
	}
	logger.Warn("Create rejected by account service", "reason", reason)
	return nil, domain.ErrorForReason(reason)
}

// Get returns one entry. Terminal entries are served from the cache when present.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	logger := s.logger.With("entryID", id)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Warn("cache read failed", "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, err
		}
		logger.Error("Get failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	s.store(ctx, entry)
	return entry, nil
}

// ListByAccount returns the entries where the account is source or recipient,
// newest first.
func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	entries, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("ListByAccount failed", "accountID", accountID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	return entries, nil
}

// finish persists the terminal status, then publishes and caches the entry.
// A conflicting transition means another worker finalized the entry first;
// the stored state is adopted.
func (s *Service) finish(ctx context.Context, entry *ledger.Entry, to ledger.Status, reason string) error {
	err := s.repo.Transition(ctx, entry.ID, to, reason)
	if errors.Is(err, domain.ErrInvalidStatusTransition) {
		stored, getErr := s.repo.Get(ctx, entry.ID)
		if getErr != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorageFailure, getErr)
		}
		*entry = *stored
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}

	if to == ledger.StatusCompleted {
		err = entry.Complete()
	} else {
		err = entry.Fail(reason)
	}
	if err != nil {
		return err
	}
	s.publish(ctx, entry)
	s.store(ctx, entry)
	return nil
}

func (s *Service) publish(ctx context.Context, entry *ledger.Entry) {
	if s.bus == nil {
		return
	}
	event := events.ForEntry(entry)
	if event == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Warn("publishing entry outcome failed",
			"entryID", entry.ID,
			"event", event.Type(),
			"error", err,
		)
	}
}

// store caches terminal entries; PENDING entries can still change.
func (s *Service) store(ctx context.Context, entry *ledger.Entry) {
	if s.cache == nil || !entry.Status.Terminal() {
		return
	}
	if err := s.cache.Set(ctx, entry, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", "entryID", entry.ID, "error", err)
	}
}
