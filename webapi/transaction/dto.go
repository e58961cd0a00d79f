package transaction

import (
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest represents the request body for a balance change.
type CreateTransactionRequest struct {
	AccountID          string          `json:"account_id" validate:"required,uuid"`
	TransactionType    string          `json:"transaction_type" validate:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Amount             decimal.Decimal `json:"amount"`
	RecipientAccountID *string         `json:"recipient_account_id,omitempty" validate:"omitempty,uuid"`
	Currency           string          `json:"currency,omitempty" validate:"omitempty,len=3,uppercase,alpha"`
}

// ToCreate converts a validated request into the service DTO.
func (r *CreateTransactionRequest) ToCreate() dto.TransactionCreate {
	create := dto.TransactionCreate{
		AccountID:       uuid.MustParse(r.AccountID),
		TransactionType: ledger.Type(r.TransactionType),
		Amount:          r.Amount,
		Currency:        r.Currency,
	}
	if r.RecipientAccountID != nil {
		id := uuid.MustParse(*r.RecipientAccountID)
		create.RecipientAccountID = &id
	}
	return create
}

// EntryResponse is the API representation of a ledger entry.
type EntryResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ReferenceID        uuid.UUID       `json:"reference_id"`
	AccountID          uuid.UUID       `json:"account_id"`
	RecipientAccountID *uuid.UUID      `json:"recipient_account_id,omitempty"`
	TransactionType    ledger.Type     `json:"transaction_type"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Status             ledger.Status   `json:"status"`
	FailureReason      string          `json:"failure_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToEntryResponse maps a ledger entry to its API representation.
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:                 e.ID,
		ReferenceID:        e.ReferenceID,
		AccountID:          e.AccountID,
		RecipientAccountID: e.RecipientAccountID,
		TransactionType:    e.Type,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Status:             e.Status,
		FailureReason:      e.FailureReason,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// ToEntryResponses maps a list of ledger entries.
func ToEntryResponses(entries []*ledger.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryResponse(e))
	}
	return out
}
