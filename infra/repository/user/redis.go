package user

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/user"
	repo "github.com/amirasaad/fintech-ledger/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps identities in Redis so both services can share them.
// Usernames are claimed with HSETNX, which makes registration race-free.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ repo.Store = (*RedisStore)(nil)

// NewRedisStore creates an identity store on client. Keys are namespaced by prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) usernamesKey() string { return s.prefix + "users:by_username" }

func (s *RedisStore) userKey(id uuid.UUID) string { return s.prefix + "user:" + id.String() }

func (s *RedisStore) Create(ctx context.Context, u *user.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	claimed, err := s.client.HSetNX(ctx, s.usernamesKey(), usernameKey(u.Username), u.ID.String()).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return domain.ErrAlreadyExists
	}
	if err := s.client.Set(ctx, s.userKey(u.ID), data, 0).Err(); err != nil {
		s.client.HDel(ctx, s.usernamesKey(), usernameKey(u.Username))
		return err
	}
	return nil
}

func (s *RedisStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	raw, err := s.client.HGet(ctx, s.usernamesKey(), usernameKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *RedisStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	raw, err := s.client.Get(ctx, s.userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	var u user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Close is a no-op; the shared client is closed by its owner.
func (s *RedisStore) Close() error { return nil }
