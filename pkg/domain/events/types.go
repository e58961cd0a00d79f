package events

import (
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is implemented by everything published on the event bus.
type Event interface {
	Type() string
}

// EventTypes maps wire type names to constructors, used by bus consumers to decode payloads.
var EventTypes = map[string]func() Event{
	EventTypeEntryCompleted.String(): func() Event { return &EntryCompleted{} },
	EventTypeEntryFailed.String():    func() Event { return &EntryFailed{} },
}

// EntryEvent carries the fields shared by every ledger outcome event.
type EntryEvent struct {
	ID                 uuid.UUID       `json:"id"`
	EntryID            uuid.UUID       `json:"entry_id"`
	ReferenceID        uuid.UUID       `json:"reference_id"`
	AccountID          uuid.UUID       `json:"account_id"`
	RecipientAccountID *uuid.UUID      `json:"recipient_account_id,omitempty"`
	TransactionType    ledger.Type     `json:"transaction_type"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Timestamp          time.Time       `json:"timestamp"`
}

// PartitionKey keeps every event of one entry in order on partitioned transports.
func (e EntryEvent) PartitionKey() string { return e.EntryID.String() }

// EventID identifies one emitted event; redeliveries carry the same id.
func (e EntryEvent) EventID() string { return e.ID.String() }

// EntryCompleted is published when a ledger entry reaches COMPLETED.
type EntryCompleted struct {
	EntryEvent
}

func (e EntryCompleted) Type() string { return EventTypeEntryCompleted.String() }

// EntryFailed is published when a ledger entry reaches FAILED.
type EntryFailed struct {
	EntryEvent
	Reason string `json:"reason"`
}

func (e EntryFailed) Type() string { return EventTypeEntryFailed.String() }

func newEntryEvent(e *ledger.Entry) EntryEvent {
	return EntryEvent{
		ID:                 uuid.New(),
		EntryID:            e.ID,
		ReferenceID:        e.ReferenceID,
		AccountID:          e.AccountID,
		RecipientAccountID: e.RecipientAccountID,
		TransactionType:    e.Type,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Timestamp:          time.Now().UTC(),
	}
}

// NewEntryCompleted builds the completion event for e.
func NewEntryCompleted(e *ledger.Entry) *EntryCompleted {
	return &EntryCompleted{EntryEvent: newEntryEvent(e)}
}

// NewEntryFailed builds the failure event for e.
func NewEntryFailed(e *ledger.Entry) *EntryFailed {
	return &EntryFailed{EntryEvent: newEntryEvent(e), Reason: e.FailureReason}
}

// ForEntry returns the outcome event matching a terminal entry, or nil while it is PENDING.
func ForEntry(e *ledger.Entry) Event {
	switch e.Status {
	case ledger.StatusCompleted:
		return NewEntryCompleted(e)
	case ledger.StatusFailed:
		return NewEntryFailed(e)
	}
	return nil
}
