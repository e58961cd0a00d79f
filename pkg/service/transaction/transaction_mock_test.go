package transaction_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/fintech-ledger/internal/fixtures/mocks"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mocked struct {
	repo   *mocks.MockLedgerRepository
	client *mocks.MockBalanceClient
	bus    *mocks.MockBus
	cache  *mocks.MockEntryCache
	svc    *transaction.Service
	now    time.Time
}

func newMocked(t *testing.T) *mocked {
	t.Helper()
	m := &mocked{
		repo:   mocks.NewMockLedgerRepository(t),
		client: mocks.NewMockBalanceClient(t),
		bus:    mocks.NewMockBus(t),
		cache:  mocks.NewMockEntryCache(t),
		now:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	m.svc = transaction.New(transaction.Deps{
		Repo:     m.repo,
		Client:   m.client,
		Bus:      m.bus,
		Cache:    m.cache,
		CacheTTL: time.Minute,
		Reconcile: &config.Reconcile{
			StaleAfter: time.Minute,
			Lease:      time.Minute,
			BatchSize:  5,
			BaseDelay:  10 * time.Second,
			MaxDelay:   time.Minute,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).WithClock(func() time.Time { return m.now })
	return m
}

func depositRequest() dto.TransactionCreate {
	return dto.TransactionCreate{
		AccountID:       uuid.New(),
		TransactionType: ledger.Deposit,
		Amount:          decimal.NewFromInt(25),
	}
}

func TestCreate_StoreFailureSkipsMutation(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	m.repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*ledger.Entry")).
		Return(errors.New("connection reset")).Once()

	_, err := m.svc.Create(context.Background(), depositRequest())
	require.ErrorIs(t, err, domain.ErrStorageFailure)
	m.client.AssertNotCalled(t, "ApplyMutation", mock.Anything, mock.Anything)
}

func TestCreate_SendsEntryReference(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	var stored *ledger.Entry
	m.repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*ledger.Entry")).
		Run(func(_ context.Context, e *ledger.Entry) { stored = e }).
		Return(nil).Once()
	m.client.EXPECT().ApplyMutation(mock.Anything, mock.AnythingOfType("dto.BalanceMutation")).
		RunAndReturn(func(_ context.Context, bm dto.BalanceMutation) (*dto.MutationResult, error) {
			require.NotNil(t, bm.ReferenceID)
			assert.Equal(t, stored.ReferenceID, *bm.ReferenceID)
			assert.Equal(t, stored.AccountID, bm.AccountID)
			assert.True(t, stored.Amount.Equal(bm.Amount))
			return &dto.MutationResult{Success: true}, nil
		}).Once()
	m.repo.EXPECT().Transition(mock.Anything, mock.Anything, ledger.StatusCompleted, "").Return(nil).Once()
	m.bus.EXPECT().Emit(mock.Anything, mock.Anything).Return(nil).Once()
	m.cache.EXPECT().Set(mock.Anything, mock.Anything, time.Minute).Return(nil).Once()

	entry, err := m.svc.Create(context.Background(), depositRequest())
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, entry.Status)
}

func TestCreate_PublishAndCacheFailuresAreNotFatal(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	m.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
	m.client.EXPECT().ApplyMutation(mock.Anything, mock.Anything).
		Return(&dto.MutationResult{Success: true}, nil).Once()
	m.repo.EXPECT().Transition(mock.Anything, mock.Anything, ledger.StatusCompleted, "").Return(nil).Once()
	m.bus.EXPECT().Emit(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	m.cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("cache down")).Once()

	entry, err := m.svc.Create(context.Background(), depositRequest())
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, entry.Status)
}

func TestCreate_ConcurrentFinalizationAdoptsStoredState(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	m.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
	m.client.EXPECT().ApplyMutation(mock.Anything, mock.Anything).
		Return(&dto.MutationResult{Success: true}, nil).Once()
	m.repo.EXPECT().Transition(mock.Anything, mock.Anything, ledger.StatusCompleted, "").
		Return(domain.ErrInvalidStatusTransition).Once()
	m.repo.EXPECT().Get(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id uuid.UUID) (*ledger.Entry, error) {
			return &ledger.Entry{ID: id, Status: ledger.StatusCompleted}, nil
		}).Once()

	entry, err := m.svc.Create(context.Background(), depositRequest())
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, entry.Status)
	m.bus.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestGet_ServesTerminalEntriesFromCache(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	id := uuid.New()
	cached := &ledger.Entry{ID: id, Status: ledger.StatusFailed, FailureReason: domain.ReasonInsufficientFunds}
	m.cache.EXPECT().Get(mock.Anything, id).Return(cached, nil).Once()

	got, err := m.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, cached, got)
	m.repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGet_CacheErrorFallsBackToStore(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	id := uuid.New()
	m.cache.EXPECT().Get(mock.Anything, id).Return(nil, errors.New("timeout")).Once()
	m.repo.EXPECT().Get(mock.Anything, id).Return(&ledger.Entry{ID: id, Status: ledger.StatusPending}, nil).Once()

	got, err := m.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPending, got.Status)
	m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_StoreFailure(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	id := uuid.New()
	m.cache.EXPECT().Get(mock.Anything, id).Return(nil, nil).Once()
	m.repo.EXPECT().Get(mock.Anything, id).Return(nil, errors.New("disk")).Once()

	_, err := m.svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}

func TestReconcile_ClaimFailure(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	m.repo.EXPECT().ClaimStale(mock.Anything, m.now, m.now.Add(-time.Minute), time.Minute, 5).
		Return(nil, errors.New("deadlock")).Once()

	n, err := m.svc.Reconcile(context.Background())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}

func TestReconcile_ReschedulesUnreachableOutcome(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	entry := &ledger.Entry{
		ID:                uuid.New(),
		ReferenceID:       uuid.New(),
		Status:            ledger.StatusPending,
		ReconcileAttempts: 2,
	}
	m.repo.EXPECT().ClaimStale(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*ledger.Entry{entry}, nil).Once()
	m.client.EXPECT().ResolveMutation(mock.Anything, entry.ReferenceID).
		Return(nil, domain.ErrTransportFailure).Once()
	m.repo.EXPECT().Reschedule(mock.Anything, entry.ID, m.now.Add(20*time.Second)).Return(nil).Once()

	n, err := m.svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReconcile_RejectedOutcomeFailsEntry(t *testing.T) {
	t.Parallel()
	m := newMocked(t)
	entry := &ledger.Entry{ID: uuid.New(), ReferenceID: uuid.New(), Status: ledger.StatusPending}
	m.repo.EXPECT().ClaimStale(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*ledger.Entry{entry}, nil).Once()
	m.client.EXPECT().ResolveMutation(mock.Anything, entry.ReferenceID).
		Return(&dto.MutationOutcome{
			ReferenceID: entry.ReferenceID,
			Outcome:     dto.OutcomeRejected,
			Reason:      domain.ReasonAccountNotActive,
		}, nil).Once()
	m.repo.EXPECT().Transition(mock.Anything, entry.ID, ledger.StatusFailed, domain.ReasonAccountNotActive).
		Return(nil).Once()
	m.bus.EXPECT().Emit(mock.Anything, mock.Anything).Return(nil).Once()
	m.cache.EXPECT().Set(mock.Anything, entry, time.Minute).Return(nil).Once()

	n, err := m.svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ledger.StatusFailed, entry.Status)
	assert.Equal(t, domain.ReasonAccountNotActive, entry.FailureReason)
}
