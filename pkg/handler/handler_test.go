package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/fintech-ledger/infra/eventbus"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedEntry(t *testing.T) *ledger.Entry {
	t.Helper()
	e, err := ledger.NewEntry(uuid.New(), ledger.Withdrawal, decimal.NewFromInt(3), nil, "")
	require.NoError(t, err)
	require.NoError(t, e.Fail(domain.ReasonInsufficientFunds))
	return e
}

func TestWithIdempotency_SkipsRedelivery(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	tracker := NewIdempotencyTracker()
	h := WithIdempotency(func(context.Context, events.Event) error {
		calls.Add(1)
		return nil
	}, tracker, ByEventID, "test", slog.Default())

	event := events.ForEntry(failedEntry(t))
	for range 3 {
		require.NoError(t, h(context.Background(), event))
	}
	assert.EqualValues(t, 1, calls.Load())
	assert.True(t, tracker.Processed(ByEventID(event)))
}

func TestWithIdempotency_ConcurrentDeliveriesShareOneAttempt(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	h := WithIdempotency(func(context.Context, events.Event) error {
		calls.Add(1)
		return nil
	}, NewIdempotencyTracker(), ByEventID, "test", slog.Default())

	event := events.ForEntry(failedEntry(t))
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h(context.Background(), event))
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, calls.Load())
}

func TestWithIdempotency_RetriesAfterFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var calls atomic.Int64
	tracker := NewIdempotencyTracker()
	h := WithIdempotency(func(context.Context, events.Event) error {
		if calls.Add(1) == 1 {
			return boom
		}
		return nil
	}, tracker, ByEventID, "test", nil)

	event := events.ForEntry(failedEntry(t))
	assert.ErrorIs(t, h(context.Background(), event), boom)
	assert.False(t, tracker.Processed(ByEventID(event)))
	assert.NoError(t, h(context.Background(), event))
	assert.EqualValues(t, 2, calls.Load())
}

type anonymousEvent struct{}

func (anonymousEvent) Type() string { return "Test.Anonymous" }

func TestIdempotencyTracker_ExpiresKeys(t *testing.T) {
	t.Parallel()
	clock := time.Now()
	tracker := NewIdempotencyTrackerWithTTL(time.Minute)
	tracker.now = func() time.Time { return clock }
	tracker.lastSweep = clock

	for i := range 100 {
		tracker.Store(fmt.Sprintf("event-%d", i))
	}
	assert.True(t, tracker.Processed("event-0"))
	assert.Len(t, tracker.processed, 100)

	clock = clock.Add(2 * time.Minute)
	assert.False(t, tracker.Processed("event-0"))

	tracker.Store("event-new")
	assert.Len(t, tracker.processed, 1)
	assert.True(t, tracker.Processed("event-new"))
}

func TestByEventID(t *testing.T) {
	t.Parallel()
	event := events.ForEntry(failedEntry(t))
	assert.NotEmpty(t, ByEventID(event))
	assert.Empty(t, ByEventID(anonymousEvent{}))
}

func TestOutcomeLog(t *testing.T) {
	t.Parallel()
	h := OutcomeLog(slog.Default())

	assert.NoError(t, h(context.Background(), events.ForEntry(failedEntry(t))))

	e, err := ledger.NewEntry(uuid.New(), ledger.Deposit, decimal.NewFromInt(3), nil, "")
	require.NoError(t, err)
	require.NoError(t, e.Complete())
	assert.NoError(t, h(context.Background(), events.ForEntry(e)))

	assert.Error(t, h(context.Background(), anonymousEvent{}))
}

func TestRegisterOutcomeHandlers(t *testing.T) {
	t.Parallel()
	bus := infraeventbus.NewWithMemory(slog.Default())
	tracker := RegisterOutcomeHandlers(bus, slog.Default())

	event := events.ForEntry(failedEntry(t))
	require.NoError(t, bus.Emit(context.Background(), event))
	assert.True(t, tracker.Processed(ByEventID(event)))
}
