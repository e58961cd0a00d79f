package transaction_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	infracache "github.com/amirasaad/fintech-ledger/infra/cache"
	infraeventbus "github.com/amirasaad/fintech-ledger/infra/eventbus"
	"github.com/amirasaad/fintech-ledger/infra/repository/memory"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	ledgerrepo "github.com/amirasaad/fintech-ledger/pkg/repository/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/service/balance"
	"github.com/amirasaad/fintech-ledger/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberSeq atomic.Int64

// remote stands in for the account service HTTP endpoint. It delegates to a
// real balance service and can simulate an unreachable service or a response
// lost after the mutation was applied.
type remote struct {
	svc          *balance.Service
	down         atomic.Bool
	dropResponse atomic.Bool
	applyCalls   atomic.Int64
}

func (r *remote) ApplyMutation(ctx context.Context, m dto.BalanceMutation) (*dto.MutationResult, error) {
	r.applyCalls.Add(1)
	if r.down.Load() {
		return nil, fmt.Errorf("%w: connection refused", domain.ErrTransportFailure)
	}
	res, err := r.svc.Apply(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
	}
	if r.dropResponse.Load() {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransportFailure, context.DeadlineExceeded)
	}
	return res, nil
}

func (r *remote) ResolveMutation(ctx context.Context, ref uuid.UUID) (*dto.MutationOutcome, error) {
	if r.down.Load() {
		return nil, fmt.Errorf("%w: connection refused", domain.ErrTransportFailure)
	}
	o, err := r.svc.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
	}
	return o, nil
}

type scenario struct {
	accounts *memory.AccountStore
	ledger   ledgerrepo.Repository
	remote   *remote
	bus      *infraeventbus.MemoryEventBus
	cache    *infracache.MemoryCache
	svc      *transaction.Service
	clock    time.Time
	rc       *config.Reconcile
}

func newScenario(t *testing.T) *scenario {
	return newScenarioWithLedger(t, memory.NewLedgerStore())
}

func newScenarioWithLedger(t *testing.T, repo ledgerrepo.Repository) *scenario {
	t.Helper()
	logger := slog.Default()
	accounts := memory.NewAccountStore()
	sc := &scenario{
		accounts: accounts,
		ledger:   repo,
		remote:   &remote{svc: balance.New(accounts, logger)},
		bus:      infraeventbus.NewWithMemory(logger),
		cache:    infracache.NewMemoryCache(),
		clock:    time.Now().UTC(),
		rc: &config.Reconcile{
			StaleAfter: time.Minute,
			Lease:      2 * time.Minute,
			BatchSize:  10,
			BaseDelay:  30 * time.Second,
			MaxDelay:   2 * time.Minute,
		},
	}
	t.Cleanup(func() { _ = sc.cache.Close() })
	sc.svc = transaction.New(transaction.Deps{
		Repo:      repo,
		Client:    sc.remote,
		Bus:       sc.bus,
		Cache:     sc.cache,
		CacheTTL:  time.Minute,
		Reconcile: sc.rc,
		Logger:    logger,
	}).WithClock(func() time.Time { return sc.clock })
	return sc
}

func (sc *scenario) seed(t *testing.T, balance int64) uuid.UUID {
	t.Helper()
	a, err := account.New().
		WithOwnerID(uuid.New()).
		WithNumber(fmt.Sprintf("%010d", numberSeq.Add(1))).
		WithBalance(decimal.NewFromInt(balance)).
		Build()
	require.NoError(t, err)
	require.NoError(t, sc.accounts.Do(context.Background(), func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(context.Background(), a)
	}))
	return a.ID
}

func (sc *scenario) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	repo, err := sc.accounts.AccountRepository()
	require.NoError(t, err)
	a, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	return a.Balance
}

// only returns the single entry recorded for an account.
func (sc *scenario) only(t *testing.T, accountID uuid.UUID) *ledger.Entry {
	t.Helper()
	entries, err := sc.ledger.ListByAccount(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return entries[0]
}

func (sc *scenario) advance(d time.Duration) {
	sc.clock = sc.clock.Add(d)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCreate_DepositCompletes(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	id := sc.seed(t, 0)

	entry, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(100),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, entry.Status)
	assert.Equal(t, ledger.DefaultCurrency, entry.Currency)
	assert.True(t, dec(100).Equal(sc.balance(t, id)))

	stored, err := sc.ledger.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, stored.Status)

	published := sc.bus.Published()
	require.Len(t, published, 1)
	completed, ok := published[0].(*events.EntryCompleted)
	require.True(t, ok)
	assert.Equal(t, entry.ID, completed.EntryID)

	cached, err := sc.cache.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, ledger.StatusCompleted, cached.Status)
}

func TestCreate_TransferMovesFunds(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	source := sc.seed(t, 50)
	recipient := sc.seed(t, 0)

	entry, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:          source,
		TransactionType:    ledger.Transfer,
		Amount:             dec(20),
		RecipientAccountID: &recipient,
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, entry.Status)
	assert.True(t, dec(30).Equal(sc.balance(t, source)))
	assert.True(t, dec(20).Equal(sc.balance(t, recipient)))

	listed, err := sc.svc.ListByAccount(context.Background(), recipient)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, entry.ID, listed[0].ID)
}

func TestCreate_InvalidRequestWritesNothing(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	id := sc.seed(t, 10)
	recipient := sc.seed(t, 0)

	tests := []struct {
		name   string
		create dto.TransactionCreate
		want   error
	}{
		{"zero amount", dto.TransactionCreate{AccountID: id, TransactionType: ledger.Deposit, Amount: decimal.Zero}, domain.ErrInvalidAmount},
		{"negative amount", dto.TransactionCreate{AccountID: id, TransactionType: ledger.Withdrawal, Amount: dec(-1)}, domain.ErrInvalidAmount},
		{"transfer without recipient", dto.TransactionCreate{AccountID: id, TransactionType: ledger.Transfer, Amount: dec(1)}, domain.ErrValidation},
		{
			"withdrawal with recipient",
			dto.TransactionCreate{AccountID: id, TransactionType: ledger.Withdrawal, Amount: dec(1), RecipientAccountID: &recipient},
			domain.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sc.svc.Create(context.Background(), tt.create)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	entries, err := sc.ledger.ListByAccount(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, sc.remote.applyCalls.Load())
}

func TestCreate_BusinessRejectionFailsEntry(t *testing.T) {
	t.Parallel()

	t.Run("insufficient funds", func(t *testing.T) {
		t.Parallel()
		sc := newScenario(t)
		id := sc.seed(t, 10)

		_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
			AccountID:       id,
			TransactionType: ledger.Withdrawal,
			Amount:          dec(11),
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, dec(10).Equal(sc.balance(t, id)))

		entry := sc.only(t, id)
		assert.Equal(t, ledger.StatusFailed, entry.Status)
		assert.Equal(t, domain.ReasonInsufficientFunds, entry.FailureReason)

		published := sc.bus.Published()
		require.Len(t, published, 1)
		failed, ok := published[0].(*events.EntryFailed)
		require.True(t, ok)
		assert.Equal(t, domain.ReasonInsufficientFunds, failed.Reason)
	})

	t.Run("unknown account", func(t *testing.T) {
		t.Parallel()
		sc := newScenario(t)
		missing := uuid.New()

		_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
			AccountID:       missing,
			TransactionType: ledger.Deposit,
			Amount:          dec(5),
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
		assert.Equal(t, ledger.StatusFailed, sc.only(t, missing).Status)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		t.Parallel()
		sc := newScenario(t)
		source := sc.seed(t, 100)
		missing := uuid.New()

		_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
			AccountID:          source,
			TransactionType:    ledger.Transfer,
			Amount:             dec(5),
			RecipientAccountID: &missing,
		})
		assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
		assert.True(t, dec(100).Equal(sc.balance(t, source)))
		assert.Equal(t, domain.ReasonRecipientNotFound, sc.only(t, source).FailureReason)
	})

	t.Run("currency differs from account", func(t *testing.T) {
		t.Parallel()
		sc := newScenario(t)
		id := sc.seed(t, 0)

		entry, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
			AccountID:       id,
			TransactionType: ledger.Deposit,
			Amount:          dec(100),
			Currency:        "EUR",
		})
		assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
		assert.Nil(t, entry)
		assert.True(t, sc.balance(t, id).IsZero())

		stored := sc.only(t, id)
		assert.Equal(t, "EUR", stored.Currency)
		assert.Equal(t, ledger.StatusFailed, stored.Status)
		assert.Equal(t, domain.ReasonCurrencyMismatch, stored.FailureReason)
	})
}

func TestCreate_TransportFailureLeavesEntryPending(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	id := sc.seed(t, 10)
	sc.remote.down.Store(true)

	_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(5),
	})
	assert.ErrorIs(t, err, domain.ErrTransportFailure)

	entry := sc.only(t, id)
	assert.Equal(t, ledger.StatusPending, entry.Status)
	assert.True(t, dec(10).Equal(sc.balance(t, id)))
	assert.Empty(t, sc.bus.Published())
	assert.EqualValues(t, 1, sc.remote.applyCalls.Load())

	got, err := sc.svc.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPending, got.Status)
	cached, err := sc.cache.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestReconcile_FencesMutationThatNeverArrived(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	id := sc.seed(t, 10)
	sc.remote.down.Store(true)

	_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(5),
	})
	require.ErrorIs(t, err, domain.ErrTransportFailure)
	pending := sc.only(t, id)

	n, err := sc.svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "fresh entries are not claimed")

	sc.remote.down.Store(false)
	sc.advance(2 * time.Minute)
	n, err = sc.svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entry := sc.only(t, id)
	assert.Equal(t, ledger.StatusFailed, entry.Status)
	assert.Equal(t, domain.ReasonMutationVoided, entry.FailureReason)

	// A delayed delivery of the original mutation can no longer apply.
	res, err := sc.remote.svc.Apply(context.Background(), dto.BalanceMutation{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(5),
		ReferenceID:     &pending.ReferenceID,
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, dec(10).Equal(sc.balance(t, id)))
	assert.EqualValues(t, 1, sc.remote.applyCalls.Load())
}

func TestReconcile_CompletesAppliedMutationWithLostResponse(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	id := sc.seed(t, 10)
	sc.remote.dropResponse.Store(true)

	_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Withdrawal,
		Amount:          dec(4),
	})
	require.ErrorIs(t, err, domain.ErrTransportFailure)
	assert.Equal(t, ledger.StatusPending, sc.only(t, id).Status)
	assert.True(t, dec(6).Equal(sc.balance(t, id)))

	sc.advance(2 * time.Minute)
	n, err := sc.svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ledger.StatusCompleted, sc.only(t, id).Status)
	assert.True(t, dec(6).Equal(sc.balance(t, id)))
	assert.EqualValues(t, 1, sc.remote.applyCalls.Load())

	published := sc.bus.Published()
	require.Len(t, published, 1)
	assert.IsType(t, &events.EntryCompleted{}, published[0])
}

func TestReconcile_BacksOffWhileServiceIsDown(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	id := sc.seed(t, 10)
	sc.remote.down.Store(true)

	_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(5),
	})
	require.ErrorIs(t, err, domain.ErrTransportFailure)

	sc.advance(2 * time.Minute)
	wantDelays := []time.Duration{30 * time.Second, time.Minute, 2 * time.Minute, 2 * time.Minute}
	for i, want := range wantDelays {
		n, err := sc.svc.Reconcile(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)

		entry := sc.only(t, id)
		assert.Equal(t, ledger.StatusPending, entry.Status)
		assert.Equal(t, i+1, entry.ReconcileAttempts)
		assert.Equal(t, sc.clock.Add(want), entry.NextReconcileAt, "attempt %d", i+1)

		n, err = sc.svc.Reconcile(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, i+1, sc.only(t, id).ReconcileAttempts, "not claimable before its next time")

		sc.advance(want)
	}

	sc.remote.down.Store(false)
	n, err := sc.svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ledger.StatusFailed, sc.only(t, id).Status)
}

// flakyLedger fails selected writes of an otherwise working store.
type flakyLedger struct {
	ledgerrepo.Repository
	failCreate     bool
	failTransition atomic.Bool
}

func (f *flakyLedger) Create(ctx context.Context, e *ledger.Entry) error {
	if f.failCreate {
		return errors.New("disk full")
	}
	return f.Repository.Create(ctx, e)
}

func (f *flakyLedger) Transition(ctx context.Context, id uuid.UUID, to ledger.Status, reason string) error {
	if f.failTransition.Load() {
		return errors.New("connection reset")
	}
	return f.Repository.Transition(ctx, id, to, reason)
}

func TestCreate_StorageFailureBeforeMutation(t *testing.T) {
	t.Parallel()
	sc := newScenarioWithLedger(t, &flakyLedger{Repository: memory.NewLedgerStore(), failCreate: true})
	id := sc.seed(t, 10)

	_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(5),
	})
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.Zero(t, sc.remote.applyCalls.Load())
	assert.True(t, dec(10).Equal(sc.balance(t, id)))
}

func TestCreate_TerminalWriteFailureIsReconciled(t *testing.T) {
	t.Parallel()
	flaky := &flakyLedger{Repository: memory.NewLedgerStore()}
	flaky.failTransition.Store(true)
	sc := newScenarioWithLedger(t, flaky)
	id := sc.seed(t, 10)

	_, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(5),
	})
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.Equal(t, ledger.StatusPending, sc.only(t, id).Status)
	assert.True(t, dec(15).Equal(sc.balance(t, id)))

	flaky.failTransition.Store(false)
	sc.advance(2 * time.Minute)
	n, err := sc.svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ledger.StatusCompleted, sc.only(t, id).Status)
	assert.True(t, dec(15).Equal(sc.balance(t, id)))
}

func TestGet(t *testing.T) {
	t.Parallel()
	sc := newScenario(t)
	id := sc.seed(t, 0)

	_, err := sc.svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	entry, err := sc.svc.Create(context.Background(), dto.TransactionCreate{
		AccountID:       id,
		TransactionType: ledger.Deposit,
		Amount:          dec(1),
	})
	require.NoError(t, err)

	got, err := sc.svc.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, ledger.StatusCompleted, got.Status)
}
