package dto

import (
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceMutation is the request accepted by the balance mutation endpoint.
// ReferenceID ties the mutation to the ledger entry that asked for it.
// Currency must match the currency of every account involved; empty means
// ledger.DefaultCurrency.
type BalanceMutation struct {
	AccountID          uuid.UUID       `json:"account_id"`
	TransactionType    ledger.Type     `json:"transaction_type"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency,omitempty"`
	RecipientAccountID *uuid.UUID      `json:"recipient_account_id,omitempty"`
	ReferenceID        *uuid.UUID      `json:"reference_id,omitempty"`
}

// MutationResult is the business outcome of a balance mutation.
type MutationResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// Outcome is what the account service recorded for a mutation reference.
type Outcome string

const (
	// OutcomeApplied means the balance writes were committed.
	OutcomeApplied Outcome = "APPLIED"
	// OutcomeRejected means the mutation failed a business rule and nothing was written.
	OutcomeRejected Outcome = "REJECTED"
	// OutcomeVoided means the reference was fenced before any mutation arrived.
	OutcomeVoided Outcome = "VOIDED"
)

// MutationOutcome is a journal record keyed by the ledger entry's reference id.
type MutationOutcome struct {
	ReferenceID uuid.UUID `json:"reference_id"`
	AccountID   uuid.UUID `json:"account_id"`
	Outcome     Outcome   `json:"outcome"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Result converts a journal record back into the result the caller originally got.
func (o *MutationOutcome) Result() *MutationResult {
	if o.Outcome == OutcomeApplied {
		return &MutationResult{Success: true}
	}
	return &MutationResult{Success: false, Reason: o.Reason}
}
