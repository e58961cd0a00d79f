package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry represents a persisted ledger entry.
type Entry struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReferenceID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	AccountID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecipientAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	Type               string          `gorm:"type:varchar(16);not null"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	Status             string          `gorm:"type:varchar(16);not null"`
	FailureReason      *string         `gorm:"type:varchar(64)"`
	ReconcileAttempts  int             `gorm:"not null"`
	NextReconcileAt    time.Time       `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for the Entry model.
func (Entry) TableName() string {
	return "ledger_entries"
}
