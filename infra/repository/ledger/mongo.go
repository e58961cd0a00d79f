package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	repo "github.com/amirasaad/fintech-ledger/pkg/repository/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type document struct {
	ID                 string    `bson:"_id"`
	ReferenceID        string    `bson:"reference_id"`
	AccountID          string    `bson:"account_id"`
	RecipientAccountID *string   `bson:"recipient_account_id,omitempty"`
	Type               string    `bson:"type"`
	Amount             string    `bson:"amount"`
	Currency           string    `bson:"currency"`
	Status             string    `bson:"status"`
	FailureReason      string    `bson:"failure_reason,omitempty"`
	ReconcileAttempts  int       `bson:"reconcile_attempts"`
	NextReconcileAt    time.Time `bson:"next_reconcile_at"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongo creates a ledger repository backed by a MongoDB collection.
func NewMongo(coll *mongo.Collection) repo.Repository {
	return &mongoRepository{coll: coll}
}

// EnsureIndexes creates the indexes the mongo ledger relies on.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "recipient_account_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "next_reconcile_at", Value: 1}}},
	})
	return err
}

func (r *mongoRepository) Create(ctx context.Context, e *ledger.Entry) error {
	_, err := r.coll.InsertOne(ctx, toDocument(e))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *mongoRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var doc document
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(&doc)
}

func (r *mongoRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"account_id": accountID.String()},
		bson.M{"recipient_account_id": accountID.String()},
	}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]*ledger.Entry, 0, len(docs))
	for i := range docs {
		e, err := fromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *mongoRepository) Transition(
	ctx context.Context,
	id uuid.UUID,
	to ledger.Status,
	reason string,
) error {
	if !to.Terminal() {
		return domain.ErrInvalidStatusTransition
	}
	set := bson.M{"status": string(to), "updated_at": time.Now().UTC()}
	if reason != "" {
		set["failure_reason"] = reason
	}
	return r.updatePending(ctx, id, bson.M{"$set": set})
}

// ClaimStale claims entries one at a time with findOneAndUpdate, which is
// atomic per document, so two reconcilers never receive the same entry.
func (r *mongoRepository) ClaimStale(
	ctx context.Context,
	now, olderThan time.Time,
	lease time.Duration,
	limit int,
) ([]*ledger.Entry, error) {
	filter := bson.M{
		"status":            string(ledger.StatusPending),
		"created_at":        bson.M{"$lt": olderThan},
		"next_reconcile_at": bson.M{"$lte": now},
	}
	update := bson.M{
		"$inc": bson.M{"reconcile_attempts": 1},
		"$set": bson.M{"next_reconcile_at": now.Add(lease), "updated_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "next_reconcile_at", Value: 1}}).
		SetReturnDocument(options.After)

	claimed := make([]*ledger.Entry, 0)
	for limit <= 0 || len(claimed) < limit {
		var doc document
		err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			break
		}
		if err != nil {
			return claimed, err
		}
		e, err := fromDocument(&doc)
		if err != nil {
			return claimed, err
		}
		claimed = append(claimed, e)
	}
	return claimed, nil
}

func (r *mongoRepository) Reschedule(ctx context.Context, id uuid.UUID, next time.Time) error {
	return r.updatePending(ctx, id, bson.M{"$set": bson.M{
		"next_reconcile_at": next,
		"updated_at":        time.Now().UTC(),
	}})
}

func (r *mongoRepository) updatePending(ctx context.Context, id uuid.UUID, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{
		"_id":    id.String(),
		"status": string(ledger.StatusPending),
	}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidStatusTransition
	}
	return nil
}

func toDocument(e *ledger.Entry) document {
	doc := document{
		ID:                e.ID.String(),
		ReferenceID:       e.ReferenceID.String(),
		AccountID:         e.AccountID.String(),
		Type:              string(e.Type),
		Amount:            e.Amount.String(),
		Currency:          e.Currency,
		Status:            string(e.Status),
		FailureReason:     e.FailureReason,
		ReconcileAttempts: e.ReconcileAttempts,
		NextReconcileAt:   e.NextReconcileAt,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.RecipientAccountID != nil {
		recipient := e.RecipientAccountID.String()
		doc.RecipientAccountID = &recipient
	}
	return doc
}

func fromDocument(doc *document) (*ledger.Entry, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	ref, err := uuid.Parse(doc.ReferenceID)
	if err != nil {
		return nil, err
	}
	accountID, err := uuid.Parse(doc.AccountID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, err
	}
	e := &ledger.Entry{
		ID:                id,
		ReferenceID:       ref,
		AccountID:         accountID,
		Type:              ledger.Type(doc.Type),
		Amount:            amount,
		Currency:          doc.Currency,
		Status:            ledger.Status(doc.Status),
		FailureReason:     doc.FailureReason,
		ReconcileAttempts: doc.ReconcileAttempts,
		NextReconcileAt:   doc.NextReconcileAt,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}
	if doc.RecipientAccountID != nil {
		recipient, err := uuid.Parse(*doc.RecipientAccountID)
		if err != nil {
			return nil, err
		}
		e.RecipientAccountID = &recipient
	}
	return e, nil
}
