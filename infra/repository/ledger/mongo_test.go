package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const mongoNS = "transactions.ledger_entries"

func entryDoc(id, accountID uuid.UUID, status string, attempts int) bson.D {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "reference_id", Value: uuid.NewString()},
		{Key: "account_id", Value: accountID.String()},
		{Key: "type", Value: "WITHDRAWAL"},
		{Key: "amount", Value: "42.10"},
		{Key: "currency", Value: "USD"},
		{Key: "status", Value: status},
		{Key: "reconcile_attempts", Value: attempts},
		{Key: "next_reconcile_at", Value: now},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		e, err := ledger.NewEntry(uuid.New(), ledger.Deposit, decimal.NewFromInt(1), nil, "")
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, repo.Create(context.Background(), e))
	})

	mt.Run("create duplicate reference", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		e, err := ledger.NewEntry(uuid.New(), ledger.Deposit, decimal.NewFromInt(1), nil, "")
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		assert.ErrorIs(mt, repo.Create(context.Background(), e), domain.ErrAlreadyExists)
	})

	mt.Run("get", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		id, accountID := uuid.New(), uuid.New()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNS, mtest.FirstBatch,
			entryDoc(id, accountID, "PENDING", 0)))
		got, err := repo.Get(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, accountID, got.AccountID)
		assert.Equal(mt, ledger.Withdrawal, got.Type)
		assert.True(mt, decimal.RequireFromString("42.10").Equal(got.Amount))
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNS, mtest.FirstBatch))
		_, err := repo.Get(context.Background(), uuid.New())
		assert.ErrorIs(mt, err, domain.ErrTransactionNotFound)
	})

	mt.Run("list by account", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		accountID := uuid.New()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNS, mtest.FirstBatch,
			entryDoc(uuid.New(), accountID, "COMPLETED", 0),
			entryDoc(uuid.New(), accountID, "FAILED", 0),
		))
		got, err := repo.ListByAccount(context.Background(), accountID)
		require.NoError(mt, err)
		assert.Len(mt, got, 2)
	})

	mt.Run("transition", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		assert.NoError(mt, repo.Transition(context.Background(), uuid.New(), ledger.StatusCompleted, ""))
	})

	mt.Run("transition terminal entry", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		id := uuid.New()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, mongoNS, mtest.FirstBatch, entryDoc(id, uuid.New(), "COMPLETED", 0)),
		)
		err := repo.Transition(context.Background(), id, ledger.StatusFailed, domain.ReasonMutationVoided)
		assert.ErrorIs(mt, err, domain.ErrInvalidStatusTransition)
	})

	mt.Run("claim stale", func(mt *mtest.T) {
		repo := NewMongo(mt.Coll)
		id := uuid.New()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: entryDoc(id, uuid.New(), "PENDING", 1)}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
		)
		now := time.Now().UTC()
		claimed, err := repo.ClaimStale(context.Background(), now, now, time.Minute, 10)
		require.NoError(mt, err)
		require.Len(mt, claimed, 1)
		assert.Equal(mt, id, claimed[0].ID)
		assert.Equal(mt, 1, claimed[0].ReconcileAttempts)
	})
}
