package account

import (
	"context"
	"errors"
	"sort"
	"time"

	infrarepo "github.com/amirasaad/fintech-ledger/infra/repository"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/account"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	repo "github.com/amirasaad/fintech-ledger/pkg/repository/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed account repository bound to db, which may be a transaction.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, a *account.Account) error {
	row := mapDomainToModel(a)
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var row Account
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	})
	if err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrAccountNotFound)
	}
	return mapModelToDomain(&row), nil
}

// ListByOwner implements account.Repository.
func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	var rows []Account
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("owner_id = ?", ownerID).
			Order("created_at").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]*account.Account, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDomain(&rows[i]))
	}
	return result, nil
}

// GetForUpdate implements account.Repository. Rows are locked with
// SELECT ... FOR UPDATE in ascending id order so two transfers touching the
// same pair of accounts always queue instead of deadlocking.
func (r *repository) GetForUpdate(
	ctx context.Context,
	ids ...uuid.UUID,
) (map[uuid.UUID]*account.Account, error) {
	lockIDs := sortedIDs(ids)
	var rows []Account
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", lockIDs).
			Order("id").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]*account.Account, len(rows))
	for i := range rows {
		result[rows[i].ID] = mapModelToDomain(&rows[i])
	}
	return result, nil
}

// Debit implements account.Repository with a conditional update, so the
// balance check and the write are one statement.
func (r *repository) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND balance >= ?", id, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return domain.ErrInsufficientFunds
	}
	return nil
}

// Credit implements account.Repository.
func (r *repository) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

type journal struct {
	db *gorm.DB
}

// NewJournal creates a gorm-backed mutation journal bound to db.
func NewJournal(db *gorm.DB) repo.Journal {
	return &journal{db: db}
}

// GetOutcome implements account.Journal.
func (j *journal) GetOutcome(ctx context.Context, referenceID uuid.UUID) (*dto.MutationOutcome, error) {
	var row MutationOutcome
	err := infrarepo.WrapError(func() error {
		return j.db.WithContext(ctx).First(&row, "reference_id = ?", referenceID).Error
	})
	if err != nil {
		return nil, err
	}
	return &dto.MutationOutcome{
		ReferenceID: row.ReferenceID,
		AccountID:   row.AccountID,
		Outcome:     dto.Outcome(row.Outcome),
		Reason:      row.Reason,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// RecordOutcome implements account.Journal.
func (j *journal) RecordOutcome(ctx context.Context, o *dto.MutationOutcome) error {
	if o == nil {
		return errors.New("nil mutation outcome")
	}
	row := MutationOutcome{
		ReferenceID: o.ReferenceID,
		AccountID:   o.AccountID,
		Outcome:     string(o.Outcome),
		Reason:      o.Reason,
		CreatedAt:   o.CreatedAt,
	}
	return infrarepo.WrapError(func() error {
		return j.db.WithContext(ctx).Create(&row).Error
	})
}

func sortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

func mapDomainToModel(a *account.Account) Account {
	return Account{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Number:    a.Number,
		Type:      string(a.Type),
		Balance:   a.Balance,
		Currency:  a.Currency,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func mapModelToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Number:    m.Number,
		Type:      account.Type(m.Type),
		Balance:   m.Balance,
		Currency:  m.Currency,
		Status:    account.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
