package ledger

import (
	"context"
	"time"

	infrarepo "github.com/amirasaad/fintech-ledger/infra/repository"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	repo "github.com/amirasaad/fintech-ledger/pkg/repository/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed ledger repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements ledger.Repository.
func (r *repository) Create(ctx context.Context, e *ledger.Entry) error {
	row := mapDomainToModel(e)
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// Get implements ledger.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var row Entry
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	})
	if err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrTransactionNotFound)
	}
	return mapModelToDomain(&row), nil
}

// ListByAccount implements ledger.Repository.
func (r *repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	var rows []Entry
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("account_id = ? OR recipient_account_id = ?", accountID, accountID).
			Order("created_at DESC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelsToDomain(rows), nil
}

// Transition implements ledger.Repository. The status guard lives in the
// WHERE clause so a terminal entry is never rewritten.
func (r *repository) Transition(
	ctx context.Context,
	id uuid.UUID,
	to ledger.Status,
	reason string,
) error {
	if !to.Terminal() {
		return domain.ErrInvalidStatusTransition
	}
	updates := map[string]any{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	if reason != "" {
		updates["failure_reason"] = reason
	}
	return r.updatePending(ctx, id, updates)
}

// ClaimStale implements ledger.Repository. Rows are selected with
// FOR UPDATE SKIP LOCKED so concurrent reconcilers never share an entry.
func (r *repository) ClaimStale(
	ctx context.Context,
	now, olderThan time.Time,
	lease time.Duration,
	limit int,
) ([]*ledger.Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND created_at < ? AND next_reconcile_at <= ?",
				string(ledger.StatusPending), olderThan, now).
			Order("next_reconcile_at").
			Limit(limit).
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		ids := make([]uuid.UUID, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		return tx.Model(&Entry{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"reconcile_attempts": gorm.Expr("reconcile_attempts + 1"),
				"next_reconcile_at":  now.Add(lease),
				"updated_at":         now,
			}).Error
	})
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	for i := range rows {
		rows[i].ReconcileAttempts++
		rows[i].NextReconcileAt = now.Add(lease)
		rows[i].UpdatedAt = now
	}
	return mapModelsToDomain(rows), nil
}

// Reschedule implements ledger.Repository.
func (r *repository) Reschedule(ctx context.Context, id uuid.UUID, next time.Time) error {
	return r.updatePending(ctx, id, map[string]any{
		"next_reconcile_at": next,
		"updated_at":        time.Now().UTC(),
	})
}

func (r *repository) updatePending(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("id = ? AND status = ?", id, string(ledger.StatusPending)).
		Updates(updates)
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidStatusTransition
	}
	return nil
}

func mapDomainToModel(e *ledger.Entry) Entry {
	row := Entry{
		ID:                 e.ID,
		ReferenceID:        e.ReferenceID,
		AccountID:          e.AccountID,
		RecipientAccountID: e.RecipientAccountID,
		Type:               string(e.Type),
		Amount:             e.Amount,
		Currency:           e.Currency,
		Status:             string(e.Status),
		ReconcileAttempts:  e.ReconcileAttempts,
		NextReconcileAt:    e.NextReconcileAt,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.FailureReason != "" {
		reason := e.FailureReason
		row.FailureReason = &reason
	}
	return row
}

func mapModelToDomain(m *Entry) *ledger.Entry {
	e := &ledger.Entry{
		ID:                 m.ID,
		ReferenceID:        m.ReferenceID,
		AccountID:          m.AccountID,
		RecipientAccountID: m.RecipientAccountID,
		Type:               ledger.Type(m.Type),
		Amount:             m.Amount,
		Currency:           m.Currency,
		Status:             ledger.Status(m.Status),
		ReconcileAttempts:  m.ReconcileAttempts,
		NextReconcileAt:    m.NextReconcileAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.FailureReason != nil {
		e.FailureReason = *m.FailureReason
	}
	return e
}

func mapModelsToDomain(rows []Entry) []*ledger.Entry {
	result := make([]*ledger.Entry, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDomain(&rows[i]))
	}
	return result
}
