package dto

import (
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate is a DTO for requesting a balance change through the orchestrator.
type TransactionCreate struct {
	AccountID          uuid.UUID
	TransactionType    ledger.Type
	Amount             decimal.Decimal
	RecipientAccountID *uuid.UUID
	Currency           string
}
