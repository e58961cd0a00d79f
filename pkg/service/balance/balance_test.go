package balance_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/fintech-ledger/infra/repository/memory"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	"github.com/amirasaad/fintech-ledger/pkg/service/balance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberSeq atomic.Int64

type harness struct {
	store *memory.AccountStore
	svc   *balance.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewAccountStore()
	return &harness{store: store, svc: balance.New(store, slog.Default())}
}

func (h *harness) seed(t *testing.T, balance int64, opts ...func(*account.Builder)) uuid.UUID {
	t.Helper()
	b := account.New().
		WithOwnerID(uuid.New()).
		WithNumber(fmt.Sprintf("%010d", numberSeq.Add(1))).
		WithBalance(decimal.NewFromInt(balance))
	for _, opt := range opts {
		opt(b)
	}
	a, err := b.Build()
	require.NoError(t, err)
	require.NoError(t, h.store.Do(context.Background(), func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(context.Background(), a)
	}))
	return a.ID
}

func (h *harness) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	repo, err := h.store.AccountRepository()
	require.NoError(t, err)
	a, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	return a.Balance
}

func (h *harness) outcome(t *testing.T, ref uuid.UUID) *dto.MutationOutcome {
	t.Helper()
	journal, err := h.store.JournalRepository()
	require.NoError(t, err)
	o, err := journal.GetOutcome(context.Background(), ref)
	require.NoError(t, err)
	return o
}

func withStatus(s account.Status) func(*account.Builder) {
	return func(b *account.Builder) { b.WithStatus(s) }
}

func withCurrency(c string) func(*account.Builder) {
	return func(b *account.Builder) { b.WithCurrency(c) }
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestApply_Deposit(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id := h.seed(t, 0)

	res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(100),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, dec(100).Equal(h.balance(t, id)))
}

func TestApply_Withdrawal(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id := h.seed(t, 100)

	res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:       id,
		TransactionType: ledger.Withdrawal,
		Amount:          dec(40),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, dec(60).Equal(h.balance(t, id)))
}

func TestApply_WithdrawalInsufficientFunds(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id := h.seed(t, 10)
	ref := uuid.New()

	res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:       id,
		TransactionType: ledger.Withdrawal,
		Amount:          dec(11),
		ReferenceID:     &ref,
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.ReasonInsufficientFunds, res.Reason)
	assert.True(t, dec(10).Equal(h.balance(t, id)))

	o := h.outcome(t, ref)
	assert.Equal(t, dto.OutcomeRejected, o.Outcome)
	assert.Equal(t, domain.ReasonInsufficientFunds, o.Reason)
}

func TestApply_Transfer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	source := h.seed(t, 100)
	recipient := h.seed(t, 5)
	ref := uuid.New()

	res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:          source,
		TransactionType:    ledger.Transfer,
		Amount:             dec(30),
		RecipientAccountID: &recipient,
		ReferenceID:        &ref,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, dec(70).Equal(h.balance(t, source)))
	assert.True(t, dec(35).Equal(h.balance(t, recipient)))
	assert.Equal(t, dto.OutcomeApplied, h.outcome(t, ref).Outcome)
}

func TestApply_TransferMissingRecipientLeavesSourceUntouched(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	source := h.seed(t, 100)
	missing := uuid.New()

	res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:          source,
		TransactionType:    ledger.Transfer,
		Amount:             dec(30),
		RecipientAccountID: &missing,
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.ReasonRecipientNotFound, res.Reason)
	assert.True(t, dec(100).Equal(h.balance(t, source)))
}

func TestApply_Rejections(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	active := h.seed(t, 100)
	other := h.seed(t, 0)
	suspended := h.seed(t, 100, withStatus(account.StatusSuspended))
	euro := h.seed(t, 0, withCurrency("EUR"))
	missing := uuid.New()

	tests := []struct {
		name   string
		m      dto.BalanceMutation
		reason string
	}{
		{
			name:   "zero amount",
			m:      dto.BalanceMutation{AccountID: active, TransactionType: ledger.Deposit, Amount: decimal.Zero},
			reason: domain.ReasonInvalidAmount,
		},
		{
			name:   "negative amount",
			m:      dto.BalanceMutation{AccountID: active, TransactionType: ledger.Withdrawal, Amount: dec(-5)},
			reason: domain.ReasonInvalidAmount,
		},
		{
			name:   "unknown source",
			m:      dto.BalanceMutation{AccountID: missing, TransactionType: ledger.Deposit, Amount: dec(1)},
			reason: domain.ReasonAccountNotFound,
		},
		{
			name:   "transfer without recipient",
			m:      dto.BalanceMutation{AccountID: active, TransactionType: ledger.Transfer, Amount: dec(1)},
			reason: domain.ReasonValidation,
		},
		{
			name: "deposit with recipient",
			m: dto.BalanceMutation{
				AccountID: active, TransactionType: ledger.Deposit, Amount: dec(1), RecipientAccountID: &other,
			},
			reason: domain.ReasonValidation,
		},
		{
			name: "transfer to self",
			m: dto.BalanceMutation{
				AccountID: active, TransactionType: ledger.Transfer, Amount: dec(1), RecipientAccountID: &active,
			},
			reason: domain.ReasonValidation,
		},
		{
			name:   "suspended source",
			m:      dto.BalanceMutation{AccountID: suspended, TransactionType: ledger.Withdrawal, Amount: dec(1)},
			reason: domain.ReasonAccountNotActive,
		},
		{
			name: "suspended recipient",
			m: dto.BalanceMutation{
				AccountID: active, TransactionType: ledger.Transfer, Amount: dec(1), RecipientAccountID: &suspended,
			},
			reason: domain.ReasonAccountNotActive,
		},
		{
			name: "currency mismatch",
			m: dto.BalanceMutation{
				AccountID: active, TransactionType: ledger.Transfer, Amount: dec(1), RecipientAccountID: &euro,
			},
			reason: domain.ReasonCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.svc.Apply(context.Background(), tt.m)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}

	assert.True(t, dec(100).Equal(h.balance(t, active)))
	assert.True(t, dec(0).Equal(h.balance(t, other)))
	assert.True(t, dec(100).Equal(h.balance(t, suspended)))
	assert.True(t, dec(0).Equal(h.balance(t, euro)))
}

func TestApply_RepeatedReferenceReplaysOutcome(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id := h.seed(t, 0)
	ref := uuid.New()
	m := dto.BalanceMutation{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(25),
		ReferenceID:     &ref,
	}

	for range 3 {
		res, err := h.svc.Apply(context.Background(), m)
		require.NoError(t, err)
		assert.True(t, res.Success)
	}
	assert.True(t, dec(25).Equal(h.balance(t, id)))
}

func TestResolve_FencesUnknownReference(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id := h.seed(t, 0)
	ref := uuid.New()

	o, err := h.svc.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeVoided, o.Outcome)
	assert.Equal(t, domain.ReasonMutationVoided, o.Reason)

	res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(25),
		ReferenceID:     &ref,
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.ReasonMutationVoided, res.Reason)
	assert.True(t, h.balance(t, id).IsZero())

	again, err := h.svc.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeVoided, again.Outcome)
}

func TestResolve_ReturnsRecordedOutcome(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id := h.seed(t, 0)
	ref := uuid.New()

	_, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(5),
		ReferenceID:     &ref,
	})
	require.NoError(t, err)

	o, err := h.svc.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeApplied, o.Outcome)
	assert.Equal(t, id, o.AccountID)
}

func TestApply_ConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	id := h.seed(t, 100)

	const workers = 50
	var (
		wg      sync.WaitGroup
		applied atomic.Int64
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
				AccountID:       id,
				TransactionType: ledger.Withdrawal,
				Amount:          dec(3),
			})
			if assert.NoError(t, err) && res.Success {
				applied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(33), applied.Load())
	assert.True(t, dec(1).Equal(h.balance(t, id)))
}

func TestApply_ConcurrentOpposingTransfers(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	a := h.seed(t, 1000)
	b := h.seed(t, 1000)

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			from, to := a, b
			if i%2 == 1 {
				from, to = b, a
			}
			res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
				AccountID:          from,
				TransactionType:    ledger.Transfer,
				Amount:             dec(10),
				RecipientAccountID: &to,
			})
			assert.NoError(t, err)
			assert.True(t, res.Success)
		}()
	}
	wg.Wait()

	assert.True(t, dec(2000).Equal(h.balance(t, a).Add(h.balance(t, b))))
	assert.True(t, dec(1000).Equal(h.balance(t, a)))
}

func TestApply_CurrencyMustMatchAccounts(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	usd := h.seed(t, 100)
	otherUSD := h.seed(t, 0)
	euro := h.seed(t, 100, withCurrency("EUR"))

	tests := []struct {
		name string
		m    dto.BalanceMutation
	}{
		{
			name: "deposit",
			m:    dto.BalanceMutation{AccountID: usd, TransactionType: ledger.Deposit, Amount: dec(10), Currency: "EUR"},
		},
		{
			name: "withdrawal",
			m:    dto.BalanceMutation{AccountID: usd, TransactionType: ledger.Withdrawal, Amount: dec(10), Currency: "EUR"},
		},
		{
			name: "transfer",
			m: dto.BalanceMutation{
				AccountID: usd, TransactionType: ledger.Transfer, Amount: dec(10), Currency: "EUR", RecipientAccountID: &otherUSD,
			},
		},
		{
			name: "default currency on euro account",
			m:    dto.BalanceMutation{AccountID: euro, TransactionType: ledger.Withdrawal, Amount: dec(10)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := uuid.New()
			tt.m.ReferenceID = &ref
			res, err := h.svc.Apply(context.Background(), tt.m)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, domain.ReasonCurrencyMismatch, res.Reason)
			assert.Equal(t, dto.OutcomeRejected, h.outcome(t, ref).Outcome)
		})
	}

	assert.True(t, dec(100).Equal(h.balance(t, usd)))
	assert.True(t, dec(0).Equal(h.balance(t, otherUSD)))
	assert.True(t, dec(100).Equal(h.balance(t, euro)))

	res, err := h.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID: euro, TransactionType: ledger.Withdrawal, Amount: dec(10), Currency: "eur",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, dec(90).Equal(h.balance(t, euro)))
}
