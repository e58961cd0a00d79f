package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents an account record in the database.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number    string          `gorm:"type:varchar(10);not null;uniqueIndex"`
	Type      string          `gorm:"type:varchar(16);not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	Status    string          `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// MutationOutcome is the journal row written for every referenced balance mutation.
type MutationOutcome struct {
	ReferenceID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID `gorm:"type:uuid"`
	Outcome     string    `gorm:"type:varchar(16);not null"`
	Reason      string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the MutationOutcome model.
func (MutationOutcome) TableName() string {
	return "mutation_outcomes"
}
