// Package memory provides in-process stores used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	accountrepo "github.com/amirasaad/fintech-ledger/pkg/repository/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountState struct {
	accounts map[uuid.UUID]account.Account
	numbers  map[string]uuid.UUID
	outcomes map[uuid.UUID]dto.MutationOutcome
}

func newAccountState() *accountState {
	return &accountState{
		accounts: make(map[uuid.UUID]account.Account),
		numbers:  make(map[string]uuid.UUID),
		outcomes: make(map[uuid.UUID]dto.MutationOutcome),
	}
}

func (s *accountState) clone() *accountState {
	c := &accountState{
		accounts: make(map[uuid.UUID]account.Account, len(s.accounts)),
		numbers:  make(map[string]uuid.UUID, len(s.numbers)),
		outcomes: make(map[uuid.UUID]dto.MutationOutcome, len(s.outcomes)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.numbers {
		c.numbers[k] = v
	}
	for k, v := range s.outcomes {
		c.outcomes[k] = v
	}
	return c
}

// AccountStore is an in-memory account store. Do holds a single lock for the
// whole unit of work and publishes its changes only when fn succeeds.
type AccountStore struct {
	mu    sync.Mutex
	state *accountState
}

// NewAccountStore creates an empty in-memory account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{state: newAccountState()}
}

// Do implements repository.UnitOfWork.
func (s *AccountStore) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(&txUoW{state: staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// AccountRepository implements repository.UnitOfWork.
func (s *AccountStore) AccountRepository() (accountrepo.Repository, error) {
	return &accounts{lock: &s.mu, state: func() *accountState { return s.state }}, nil
}

// JournalRepository implements repository.UnitOfWork.
func (s *AccountStore) JournalRepository() (accountrepo.Journal, error) {
	return &journal{lock: &s.mu, state: func() *accountState { return s.state }}, nil
}

type txUoW struct {
	state *accountState
}

func (u *txUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *txUoW) AccountRepository() (accountrepo.Repository, error) {
	return &accounts{lock: noopLocker{}, state: func() *accountState { return u.state }}, nil
}

func (u *txUoW) JournalRepository() (accountrepo.Journal, error) {
	return &journal{lock: noopLocker{}, state: func() *accountState { return u.state }}, nil
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

type accounts struct {
	lock  sync.Locker
	state func() *accountState
}

func (r *accounts) Create(ctx context.Context, a *account.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	st := r.state()
	if _, ok := st.accounts[a.ID]; ok {
		return domain.ErrAlreadyExists
	}
	if _, ok := st.numbers[a.Number]; ok {
		return domain.ErrAlreadyExists
	}
	st.accounts[a.ID] = *a
	st.numbers[a.Number] = a.ID
	return nil
}

func (r *accounts) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	a, ok := r.state().accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (r *accounts) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var result []*account.Account
	for _, a := range r.state().accounts {
		if a.OwnerID == ownerID {
			a := a
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// GetForUpdate relies on the unit of work lock; rows need no finer locking.
func (r *accounts) GetForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make(map[uuid.UUID]*account.Account, len(ids))
	for _, id := range ids {
		if a, ok := r.state().accounts[id]; ok {
			result[id] = &a
		}
	}
	return result, nil
}

func (r *accounts) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	st := r.state()
	a, ok := st.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if err := a.Debit(amount); err != nil {
		return err
	}
	st.accounts[id] = a
	return nil
}

func (r *accounts) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	st := r.state()
	a, ok := st.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if err := a.Credit(amount); err != nil {
		return err
	}
	st.accounts[id] = a
	return nil
}

type journal struct {
	lock  sync.Locker
	state func() *accountState
}

func (j *journal) GetOutcome(ctx context.Context, referenceID uuid.UUID) (*dto.MutationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j.lock.Lock()
	defer j.lock.Unlock()
	o, ok := j.state().outcomes[referenceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (j *journal) RecordOutcome(ctx context.Context, o *dto.MutationOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.lock.Lock()
	defer j.lock.Unlock()
	st := j.state()
	if _, ok := st.outcomes[o.ReferenceID]; ok {
		return domain.ErrAlreadyExists
	}
	st.outcomes[o.ReferenceID] = *o
	return nil
}
