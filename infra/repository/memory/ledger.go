package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	ledgerrepo "github.com/amirasaad/fintech-ledger/pkg/repository/ledger"
	"github.com/google/uuid"
)

// LedgerStore is an in-memory ledger repository.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]ledger.Entry
}

var _ ledgerrepo.Repository = (*LedgerStore)(nil)

// NewLedgerStore creates an empty in-memory ledger.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{entries: make(map[uuid.UUID]ledger.Entry)}
}

func (s *LedgerStore) Create(ctx context.Context, e *ledger.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; ok {
		return domain.ErrAlreadyExists
	}
	for _, existing := range s.entries {
		if existing.ReferenceID == e.ReferenceID {
			return domain.ErrAlreadyExists
		}
	}
	s.entries[e.ID] = copyEntry(e)
	return nil
}

func (s *LedgerStore) Get(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	out := copyEntry(&e)
	return &out, nil
}

func (s *LedgerStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*ledger.Entry, 0)
	for _, e := range s.entries {
		if e.Involves(accountID) {
			out := copyEntry(&e)
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *LedgerStore) Transition(ctx context.Context, id uuid.UUID, to ledger.Status, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	switch to {
	case ledger.StatusCompleted:
		if err := e.Complete(); err != nil {
			return err
		}
	case ledger.StatusFailed:
		if err := e.Fail(reason); err != nil {
			return err
		}
	default:
		return domain.ErrInvalidStatusTransition
	}
	s.entries[id] = e
	return nil
}

func (s *LedgerStore) ClaimStale(
	ctx context.Context,
	now, olderThan time.Time,
	lease time.Duration,
	limit int,
) ([]*ledger.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]ledger.Entry, 0)
	for _, e := range s.entries {
		if e.Status == ledger.StatusPending &&
			e.CreatedAt.Before(olderThan) &&
			!e.NextReconcileAt.After(now) {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].NextReconcileAt.Before(candidates[j].NextReconcileAt)
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	claimed := make([]*ledger.Entry, 0, len(candidates))
	for _, e := range candidates {
		e.ReconcileAttempts++
		e.NextReconcileAt = now.Add(lease)
		e.UpdatedAt = now
		s.entries[e.ID] = e
		out := copyEntry(&e)
		claimed = append(claimed, &out)
	}
	return claimed, nil
}

func (s *LedgerStore) Reschedule(ctx context.Context, id uuid.UUID, next time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if e.Status != ledger.StatusPending {
		return domain.ErrInvalidStatusTransition
	}
	e.NextReconcileAt = next
	s.entries[id] = e
	return nil
}

func copyEntry(e *ledger.Entry) ledger.Entry {
	out := *e
	if e.RecipientAccountID != nil {
		r := *e.RecipientAccountID
		out.RecipientAccountID = &r
	}
	return out
}
