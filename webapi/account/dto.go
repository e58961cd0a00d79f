package account

import (
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	AccountType string `json:"account_type" validate:"required,oneof=SAVINGS CHECKING"`
	Currency    string `json:"currency,omitempty" validate:"omitempty,len=3,uppercase,alpha"`
}

// BalanceMutationRequest represents the request body of the balance mutation
// endpoint. Amount is checked by the balance service so that a non-positive
// amount is a business rejection rather than a malformed request.
type BalanceMutationRequest struct {
	AccountID          string          `json:"account_id" validate:"required,uuid"`
	TransactionType    string          `json:"transaction_type" validate:"required"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	RecipientAccountID *string         `json:"recipient_account_id,omitempty" validate:"omitempty,uuid"`
	ReferenceID        *string         `json:"reference_id,omitempty" validate:"omitempty,uuid"`
}

// ToMutation converts a validated request into the service DTO.
func (r *BalanceMutationRequest) ToMutation() dto.BalanceMutation {
	m := dto.BalanceMutation{
		AccountID:       uuid.MustParse(r.AccountID),
		TransactionType: ledger.Type(r.TransactionType),
		Amount:          r.Amount,
		Currency:        r.Currency,
	}
	if r.RecipientAccountID != nil {
		id := uuid.MustParse(*r.RecipientAccountID)
		m.RecipientAccountID = &id
	}
	if r.ReferenceID != nil {
		id := uuid.MustParse(*r.ReferenceID)
		m.ReferenceID = &id
	}
	return m
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Number    string          `json:"account_number"`
	Type      account.Type    `json:"account_type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Status    account.Status  `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToAccountResponse maps a domain account to its API representation.
func ToAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Number:    a.Number,
		Type:      a.Type,
		Balance:   a.Balance,
		Currency:  a.Currency,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToAccountResponses maps a list of accounts.
func ToAccountResponses(accounts []*account.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountResponse(a))
	}
	return out
}
