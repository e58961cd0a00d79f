package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from REDIS_URL and the pool settings, then pings it.
func NewRedisClient(ctx context.Context, cnf *config.Redis) (*redis.Client, error) {
	if cnf == nil || cnf.URL == "" {
		return nil, errors.New("REDIS_URL is not set")
	}
	opt, err := redis.ParseURL(cnf.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.PoolSize = cnf.PoolSize
	opt.DialTimeout = cnf.DialTimeout
	opt.ReadTimeout = cnf.ReadTimeout
	opt.WriteTimeout = cnf.WriteTimeout

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}
