package account

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when an account is opened without an explicit currency.
const DefaultCurrency = "USD"

var (
	// ErrOwnerRequired is returned when an account is built without an owner.
	ErrOwnerRequired = errors.New("owner id is required")
	// ErrInvalidAccountType is returned for an unknown account type.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrInvalidCurrency is returned for a currency that is not a 3-letter ISO code.
	ErrInvalidCurrency = errors.New("invalid currency code")
	// ErrInvalidAccountNumber is returned when the account number is not 10 digits.
	ErrInvalidAccountNumber = errors.New("account number must be 10 digits")
)

var (
	currencyPattern      = regexp.MustCompile(`^[A-Z]{3}$`)
	accountNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Type is the kind of account.
type Type string

const (
	Savings  Type = "SAVINGS"
	Checking Type = "CHECKING"
)

// Valid reports whether t is a known account type.
func (t Type) Valid() bool {
	return t == Savings || t == Checking
}

// Status is the lifecycle state of an account.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusClosed    Status = "CLOSED"
)

// Account is a customer's account record. The balance is owned exclusively
// by the account service and is only changed through Debit and Credit.
//
// Invariants:
//   - An account always has an owner and a 10-digit number.
//   - A debit never drives the balance below zero.
type Account struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Number    string
	Type      Type
	Balance   decimal.Decimal
	Currency  string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	number    string
	typ       Type
	balance   decimal.Decimal
	currency  string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// New creates a new Builder with a fresh id, the default currency, and ACTIVE status.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		typ:       Checking,
		balance:   decimal.Zero,
		currency:  DefaultCurrency,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithOwnerID sets the owner. This is a mandatory field.
func (b *Builder) WithOwnerID(ownerID uuid.UUID) *Builder {
	b.ownerID = ownerID
	return b
}

// WithNumber sets the externally visible account number.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithType sets the account type.
func (b *Builder) WithType(t Type) *Builder {
	b.typ = t
	return b
}

// WithCurrency sets the currency. An empty code keeps the default.
func (b *Builder) WithCurrency(code string) *Builder {
	if code != "" {
		b.currency = strings.ToUpper(code)
	}
	return b
}

// WithBalance sets the balance. Used when hydrating from storage and in tests.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithStatus sets the status. Used when hydrating from storage.
func (b *Builder) WithStatus(s Status) *Builder {
	b.status = s
	return b
}

// WithTimestamps sets creation and update time. Used when hydrating from storage.
func (b *Builder) WithTimestamps(created, updated time.Time) *Builder {
	b.createdAt = created
	b.updatedAt = updated
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrOwnerRequired)
	}
	if !b.typ.Valid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrInvalidAccountType)
	}
	if !currencyPattern.MatchString(b.currency) {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrInvalidCurrency)
	}
	if !accountNumberPattern.MatchString(b.number) {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrInvalidAccountNumber)
	}
	return &Account{
		ID:        b.id,
		OwnerID:   b.ownerID,
		Number:    b.number,
		Type:      b.typ,
		Balance:   b.balance,
		Currency:  b.currency,
		Status:    b.status,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// IsActive reports whether the account accepts balance mutations.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// ValidateDebit checks that amount can be taken from the account.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !a.IsActive() {
		return domain.ErrAccountNotActive
	}
	if a.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// ValidateCredit checks that amount can be added to the account.
func (a *Account) ValidateCredit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !a.IsActive() {
		return domain.ErrAccountNotActive
	}
	return nil
}

// Debit removes amount from the in-memory balance after validation.
func (a *Account) Debit(amount decimal.Decimal) error {
	if err := a.ValidateDebit(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Credit adds amount to the in-memory balance after validation.
func (a *Account) Credit(amount decimal.Decimal) error {
	if err := a.ValidateCredit(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}
