package events

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEntry(t *testing.T) {
	e, err := ledger.NewEntry(uuid.New(), ledger.Withdrawal, decimal.NewFromInt(3), nil, "")
	require.NoError(t, err)

	assert.Nil(t, ForEntry(e), "pending entries have no outcome event")

	require.NoError(t, e.Fail("INSUFFICIENT_FUNDS"))
	evt := ForEntry(e)
	failed, ok := evt.(*EntryFailed)
	require.True(t, ok)
	assert.Equal(t, EventTypeEntryFailed.String(), failed.Type())
	assert.Equal(t, "INSUFFICIENT_FUNDS", failed.Reason)
	assert.Equal(t, e.ReferenceID, failed.ReferenceID)
}

func TestEventTypesDecode(t *testing.T) {
	e, err := ledger.NewEntry(uuid.New(), ledger.Deposit, decimal.RequireFromString("12.50"), nil, "")
	require.NoError(t, err)
	require.NoError(t, e.Complete())

	data, err := json.Marshal(NewEntryCompleted(e))
	require.NoError(t, err)

	factory, ok := EventTypes[EventTypeEntryCompleted.String()]
	require.True(t, ok)
	decoded := factory()
	require.NoError(t, json.Unmarshal(data, decoded))

	completed := decoded.(*EntryCompleted)
	assert.Equal(t, e.ID, completed.EntryID)
	assert.True(t, completed.Amount.Equal(e.Amount))
}
