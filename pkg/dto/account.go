package dto

import (
	"github.com/google/uuid"
)

// AccountCreate is a DTO for opening a new account.
type AccountCreate struct {
	OwnerID  uuid.UUID // Customer who owns the account, taken from the identity claim
	Type     string    // SAVINGS or CHECKING
	Currency string    // ISO-4217 code, defaults to USD
}
