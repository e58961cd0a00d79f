package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/fintech-ledger/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient connects to MongoDB and verifies the primary is reachable.
func NewMongoClient(ctx context.Context, cnf *config.Mongo) (*mongo.Client, error) {
	if cnf == nil || cnf.URI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}
	opts := options.Client().
		ApplyURI(cnf.URI).
		SetMaxPoolSize(cnf.MaxPoolSize).
		SetServerSelectionTimeout(cnf.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return client, nil
}
