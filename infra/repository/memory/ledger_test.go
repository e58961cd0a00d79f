package memory

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t *testing.T, accountID uuid.UUID, created time.Time) *ledger.Entry {
	t.Helper()
	e, err := ledger.NewEntry(accountID, ledger.Deposit, decimal.NewFromInt(1), nil, "")
	require.NoError(t, err)
	e.CreatedAt = created
	e.NextReconcileAt = created
	return e
}

func TestLedgerStore_ListByAccountNewestFirst(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()
	source, recipient := uuid.New(), uuid.New()
	base := time.Now().UTC()

	older := newEntry(t, source, base.Add(-time.Minute))
	newer := newEntry(t, source, base)
	transfer, err := ledger.NewEntry(source, ledger.Transfer, decimal.NewFromInt(2), &recipient, "")
	require.NoError(t, err)
	transfer.CreatedAt = base.Add(time.Minute)
	for _, e := range []*ledger.Entry{older, newer, transfer} {
		require.NoError(t, store.Create(ctx, e))
	}

	list, err := store.ListByAccount(ctx, source)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, transfer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[2].ID)

	incoming, err := store.ListByAccount(ctx, recipient)
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	none, err := store.ListByAccount(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLedgerStore_TransitionIsMonotonic(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()
	e := newEntry(t, uuid.New(), time.Now().UTC())
	require.NoError(t, store.Create(ctx, e))

	require.NoError(t, store.Transition(ctx, e.ID, ledger.StatusCompleted, ""))
	err := store.Transition(ctx, e.ID, ledger.StatusFailed, domain.ReasonMutationVoided)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	got, err := store.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCompleted, got.Status)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestLedgerStore_ClaimStale(t *testing.T) {
	store := NewLedgerStore()
	ctx := context.Background()
	now := time.Now().UTC()

	stale := newEntry(t, uuid.New(), now.Add(-10*time.Minute))
	fresh := newEntry(t, uuid.New(), now)
	done := newEntry(t, uuid.New(), now.Add(-10*time.Minute))
	for _, e := range []*ledger.Entry{stale, fresh, done} {
		require.NoError(t, store.Create(ctx, e))
	}
	require.NoError(t, store.Transition(ctx, done.ID, ledger.StatusCompleted, ""))

	claimed, err := store.ClaimStale(ctx, now, now.Add(-time.Minute), 2*time.Minute, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, stale.ID, claimed[0].ID)
	assert.Equal(t, 1, claimed[0].ReconcileAttempts)

	again, err := store.ClaimStale(ctx, now, now.Add(-time.Minute), 2*time.Minute, 10)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, store.Reschedule(ctx, stale.ID, now))
	again, err = store.ClaimStale(ctx, now, now.Add(-time.Minute), 2*time.Minute, 10)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, 2, again[0].ReconcileAttempts)
}
