package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountSeq atomic.Int64

func seedAccount(t *testing.T, store *AccountStore, balance int64) *account.Account {
	t.Helper()
	acc, err := account.New().
		WithOwnerID(uuid.New()).
		WithNumber(fmt.Sprintf("%010d", accountSeq.Add(1))).
		WithBalance(decimal.NewFromInt(balance)).
		Build()
	require.NoError(t, err)
	repo, err := store.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), acc))
	return acc
}

func TestAccountStore_CreateAndGet(t *testing.T) {
	store := NewAccountStore()
	acc := seedAccount(t, store, 10)
	repo, _ := store.AccountRepository()

	got, err := repo.Get(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(got.Balance))

	_, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	dup := *acc
	dup.ID = uuid.New()
	assert.ErrorIs(t, repo.Create(context.Background(), &dup), domain.ErrAlreadyExists)

	list, err := repo.ListByOwner(context.Background(), acc.OwnerID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAccountStore_DoRollsBack(t *testing.T) {
	store := NewAccountStore()
	acc := seedAccount(t, store, 10)
	boom := errors.New("boom")

	err := store.Do(context.Background(), func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		require.NoError(t, err)
		require.NoError(t, repo.Debit(context.Background(), acc.ID, decimal.NewFromInt(4)))
		journal, err := uow.JournalRepository()
		require.NoError(t, err)
		require.NoError(t, journal.RecordOutcome(context.Background(), &dto.MutationOutcome{
			ReferenceID: uuid.New(),
			Outcome:     dto.OutcomeApplied,
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	repo, _ := store.AccountRepository()
	got, err := repo.Get(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(got.Balance))
}

func TestAccountStore_DebitRules(t *testing.T) {
	store := NewAccountStore()
	acc := seedAccount(t, store, 5)
	repo, _ := store.AccountRepository()

	assert.ErrorIs(t, repo.Debit(context.Background(), acc.ID, decimal.NewFromInt(6)), domain.ErrInsufficientFunds)
	assert.ErrorIs(t, repo.Debit(context.Background(), uuid.New(), decimal.NewFromInt(1)), domain.ErrAccountNotFound)
	assert.ErrorIs(t, repo.Credit(context.Background(), uuid.New(), decimal.NewFromInt(1)), domain.ErrAccountNotFound)
	assert.ErrorIs(t, repo.Debit(context.Background(), acc.ID, decimal.Zero), domain.ErrInvalidAmount)
	assert.ErrorIs(t, repo.Credit(context.Background(), acc.ID, decimal.NewFromInt(-1)), domain.ErrInvalidAmount)
	require.NoError(t, repo.Debit(context.Background(), acc.ID, decimal.NewFromInt(5)))

	got, _ := repo.Get(context.Background(), acc.ID)
	assert.True(t, got.Balance.IsZero())
	assert.False(t, got.UpdatedAt.Before(acc.UpdatedAt))
}

func TestAccountStore_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	store := NewAccountStore()
	acc := seedAccount(t, store, 100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Do(context.Background(), func(uow repository.UnitOfWork) error {
				repo, err := uow.AccountRepository()
				if err != nil {
					return err
				}
				locked, err := repo.GetForUpdate(context.Background(), acc.ID)
				if err != nil {
					return err
				}
				if err := locked[acc.ID].ValidateDebit(decimal.NewFromInt(3)); err != nil {
					return err
				}
				return repo.Debit(context.Background(), acc.ID, decimal.NewFromInt(3))
			})
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	repo, _ := store.AccountRepository()
	got, err := repo.Get(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, applied)
	assert.True(t, decimal.NewFromInt(1).Equal(got.Balance))
}

func TestJournal_RecordOnce(t *testing.T) {
	store := NewAccountStore()
	journal, _ := store.JournalRepository()
	ref := uuid.New()

	_, err := journal.GetOutcome(context.Background(), ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, journal.RecordOutcome(context.Background(), &dto.MutationOutcome{
		ReferenceID: ref, Outcome: dto.OutcomeVoided, Reason: domain.ReasonMutationVoided,
	}))
	err = journal.RecordOutcome(context.Background(), &dto.MutationOutcome{
		ReferenceID: ref, Outcome: dto.OutcomeApplied,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := journal.GetOutcome(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeVoided, got.Outcome)
}
