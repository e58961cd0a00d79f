package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
)

// Balance mutation and ledger errors
var (
	// ErrInvalidAmount is returned when an amount is zero or negative
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrAccountNotFound is returned when the source account does not exist
	ErrAccountNotFound = errors.New("account not found")
	// ErrRecipientNotFound is returned when the transfer recipient does not exist
	ErrRecipientNotFound = errors.New("recipient account not found")
	// ErrInsufficientFunds is returned when a debit would overdraw the account
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTransactionNotFound is returned when a ledger entry does not exist
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransportFailure is returned when the remote balance service could not be reached
	// or answered with something other than a business outcome
	ErrTransportFailure = errors.New("balance service unavailable")
	// ErrStorageFailure is returned when a persistence write or read fails
	ErrStorageFailure = errors.New("storage failure")

	// ErrAccountNotActive is returned when a mutation targets a suspended or closed account
	ErrAccountNotActive = errors.New("account is not active")
	// ErrCurrencyMismatch is returned when a mutation crosses currencies
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidStatusTransition is returned when a terminal ledger entry would change status
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	// ErrMutationVoided is returned when a mutation carries a reference that was fenced off
	ErrMutationVoided = errors.New("mutation reference was voided")
	// ErrBalanceUpdateRejected is returned for a business failure without a known reason
	ErrBalanceUpdateRejected = errors.New("failed to update balance")
)

// Reason codes carried on the wire between the transaction and account services.
const (
	ReasonInvalidAmount     = "INVALID_AMOUNT"
	ReasonAccountNotFound   = "ACCOUNT_NOT_FOUND"
	ReasonRecipientNotFound = "RECIPIENT_NOT_FOUND"
	ReasonInsufficientFunds = "INSUFFICIENT_FUNDS"
	ReasonAccountNotActive  = "ACCOUNT_NOT_ACTIVE"
	ReasonCurrencyMismatch  = "CURRENCY_MISMATCH"
	ReasonValidation        = "VALIDATION_FAILED"
	ReasonMutationVoided    = "MUTATION_VOIDED"
	ReasonRejected          = "REJECTED"
)

var reasons = []struct {
	code string
	err  error
}{
	{ReasonInvalidAmount, ErrInvalidAmount},
	{ReasonAccountNotFound, ErrAccountNotFound},
	{ReasonRecipientNotFound, ErrRecipientNotFound},
	{ReasonInsufficientFunds, ErrInsufficientFunds},
	{ReasonAccountNotActive, ErrAccountNotActive},
	{ReasonCurrencyMismatch, ErrCurrencyMismatch},
	{ReasonValidation, ErrValidation},
	{ReasonMutationVoided, ErrMutationVoided},
}

// ReasonFor returns the wire reason code for a business error.
// The second return value is false when err is not a business failure.
func ReasonFor(err error) (string, bool) {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code, true
		}
	}
	return "", false
}

// ErrorForReason maps a wire reason code back to its domain error.
func ErrorForReason(code string) error {
	for _, r := range reasons {
		if r.code == code {
			return r.err
		}
	}
	return ErrBalanceUpdateRejected
}
