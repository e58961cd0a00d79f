// Package ledger holds the ledger entry aggregate recorded by the transaction
// service for every requested balance change.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a transaction is requested without a currency.
const DefaultCurrency = "USD"

var (
	// ErrInvalidType is returned for an unknown transaction type.
	ErrInvalidType = errors.New("invalid transaction type")
	// ErrRecipientRequired is returned when a transfer has no recipient.
	ErrRecipientRequired = errors.New("recipient account is required for transfers")
	// ErrRecipientNotAllowed is returned when a deposit or withdrawal names a recipient.
	ErrRecipientNotAllowed = errors.New("recipient account is only allowed for transfers")
	// ErrSameAccount is returned when a transfer names the source as recipient.
	ErrSameAccount = errors.New("cannot transfer to same account")
)

// Type is the kind of balance change requested.
type Type string

const (
	Deposit    Type = "DEPOSIT"
	Withdrawal Type = "WITHDRAWAL"
	Transfer   Type = "TRANSFER"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	}
	return false
}

// Debits reports whether t takes money out of the source account.
func (t Type) Debits() bool {
	return t == Withdrawal || t == Transfer
}

// Status is the state of a ledger entry. PENDING is the only non-terminal state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Terminal reports whether s can no longer change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Entry is one requested balance change and its outcome.
type Entry struct {
	ID                 uuid.UUID
	ReferenceID        uuid.UUID
	AccountID          uuid.UUID
	RecipientAccountID *uuid.UUID
	Type               Type
	Amount             decimal.Decimal
	Currency           string
	Status             Status
	FailureReason      string
	ReconcileAttempts  int
	NextReconcileAt    time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidateRequest checks the shape of a requested balance change.
// It is shared by the orchestrator and the balance mutation service.
func ValidateRequest(
	accountID uuid.UUID,
	t Type,
	amount decimal.Decimal,
	recipientID *uuid.UUID,
) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if accountID == uuid.Nil {
		return fmt.Errorf("%w: account id is required", domain.ErrValidation)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %w", domain.ErrValidation, ErrInvalidType)
	}
	switch {
	case t == Transfer && (recipientID == nil || *recipientID == uuid.Nil):
		return fmt.Errorf("%w: %w", domain.ErrValidation, ErrRecipientRequired)
	case t != Transfer && recipientID != nil:
		return fmt.Errorf("%w: %w", domain.ErrValidation, ErrRecipientNotAllowed)
	case t == Transfer && *recipientID == accountID:
		return fmt.Errorf("%w: %w", domain.ErrValidation, ErrSameAccount)
	}
	return nil
}

// NewEntry validates the request and returns a PENDING entry with a fresh reference id.
func NewEntry(
	accountID uuid.UUID,
	t Type,
	amount decimal.Decimal,
	recipientID *uuid.UUID,
	currency string,
) (*Entry, error) {
	if err := ValidateRequest(accountID, t, amount, recipientID); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	now := time.Now().UTC()
	return &Entry{
		ID:                 uuid.New(),
		ReferenceID:        uuid.New(),
		AccountID:          accountID,
		RecipientAccountID: recipientID,
		Type:               t,
		Amount:             amount,
		Currency:           strings.ToUpper(currency),
		Status:             StatusPending,
		NextReconcileAt:    now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Complete moves a PENDING entry to COMPLETED.
func (e *Entry) Complete() error {
	return e.transition(StatusCompleted, "")
}

// Fail moves a PENDING entry to FAILED with a reason code.
func (e *Entry) Fail(reason string) error {
	return e.transition(StatusFailed, reason)
}

func (e *Entry) transition(to Status, reason string) error {
	if e.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, e.Status, to)
	}
	e.Status = to
	e.FailureReason = reason
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// Involves reports whether accountID is the source or the recipient of the entry.
func (e *Entry) Involves(accountID uuid.UUID) bool {
	if e.AccountID == accountID {
		return true
	}
	return e.RecipientAccountID != nil && *e.RecipientAccountID == accountID
}
