package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements cache.EntryCache using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCache creates a RedisCache on an existing client.
func NewRedisCache(
	client *redis.Client,
	prefix string,
	logger *slog.Logger,
) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisCache) key(id uuid.UUID) string {
	return r.prefix + id.String()
}

func (r *RedisCache) Get(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	val, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "id", id)
		return nil, nil // cache miss
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "id", id, "error", err)
		return nil, err
	}
	var e ledger.Entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		r.logger.Error("Redis cache unmarshal error", "id", id, "error", err)
		return nil, err
	}
	r.logger.Debug("Redis cache hit", "id", id, "status", e.Status)
	return &e, nil
}

func (r *RedisCache) Set(ctx context.Context, e *ledger.Entry, ttl time.Duration) error {
	data, err := json.Marshal(e)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "id", e.ID, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key(e.ID), data, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "id", e.ID, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "id", e.ID, "ttl", ttl)
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "id", id, "error", err)
		return err
	}
	r.logger.Debug("Redis cache delete", "id", id)
	return nil
}
