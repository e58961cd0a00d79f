// Package initializer builds the infrastructure of the account and
// transaction service processes from configuration.
package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/amirasaad/fintech-ledger/infra"
	infra_cache "github.com/amirasaad/fintech-ledger/infra/cache"
	infra_eventbus "github.com/amirasaad/fintech-ledger/infra/eventbus"
	"github.com/amirasaad/fintech-ledger/infra/providers"
	"github.com/amirasaad/fintech-ledger/infra/repository/ledger"
	"github.com/amirasaad/fintech-ledger/infra/repository/memory"
	infra_user "github.com/amirasaad/fintech-ledger/infra/repository/user"
	"github.com/amirasaad/fintech-ledger/pkg/app"
	"github.com/amirasaad/fintech-ledger/pkg/cache"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/eventbus"
	ledgerrepo "github.com/amirasaad/fintech-ledger/pkg/repository/ledger"
	repouser "github.com/amirasaad/fintech-ledger/pkg/repository/user"
	"github.com/amirasaad/fintech-ledger/pkg/service/auth"
	"github.com/redis/go-redis/v9"
)

// ServiceSubject is the subject of the token the transaction service presents
// to the account service.
const ServiceSubject = "transactions"

// Cleanup releases what an initializer opened. It is safe to call once.
type Cleanup func()

type closers struct {
	list   []func() error
	logger *slog.Logger
}

func (c *closers) add(fn func() error) { c.list = append(c.list, fn) }

func (c *closers) run() {
	for i := len(c.list) - 1; i >= 0; i-- {
		if err := c.list[i](); err != nil {
			c.logger.Warn("Failed to release resource", "error", err)
		}
	}
}

// InitializeAccountDeps builds the account service infrastructure: the
// account store (Postgres, or memory when no DATABASE_URL is set) and the
// identity store.
func InitializeAccountDeps(ctx context.Context, cfg *config.App) (*app.AccountDeps, Cleanup, error) {
	logger := setupLogger(cfg.Log)
	c := &closers{logger: logger}
	deps := &app.AccountDeps{Logger: logger}

	if cfg.DB == nil || cfg.DB.Url == "" {
		logger.Warn("DATABASE_URL is not set, using in-memory account store")
		deps.Uow = memory.NewAccountStore()
	} else {
		db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return nil, nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			c.add(sqlDB.Close)
		}
		if cfg.DB.AutoMigrate {
			if err := infra.RunMigrations(db, logger); err != nil {
				c.run()
				return nil, nil, err
			}
		}
		deps.Uow = infra.NewUoW(db)
	}

	rdb := &lazyRedis{cfg: cfg.Redis, closers: c}
	users, err := initUserStore(ctx, cfg, rdb, logger)
	if err != nil {
		c.run()
		return nil, nil, err
	}
	c.add(users.Close)
	deps.Users = users

	return deps, c.run, nil
}

// InitializeTransactionDeps builds the transaction service infrastructure:
// the ledger store, the account service client, the outcome event bus, the
// entry cache and the identity store.
func InitializeTransactionDeps(ctx context.Context, cfg *config.App) (*app.TransactionDeps, Cleanup, error) {
	logger := setupLogger(cfg.Log)
	c := &closers{logger: logger}
	deps := &app.TransactionDeps{Logger: logger}
	rdb := &lazyRedis{cfg: cfg.Redis, closers: c}

	repo, err := initLedger(ctx, cfg, c, logger)
	if err != nil {
		c.run()
		return nil, nil, err
	}
	deps.Ledger = repo

	bus, err := initEventBus(ctx, cfg, rdb, logger)
	if err != nil {
		c.run()
		return nil, nil, err
	}
	if closer, ok := bus.(io.Closer); ok {
		c.add(closer.Close)
	}
	deps.EventBus = bus

	entryCache, err := initCache(ctx, cfg, rdb, c, logger)
	if err != nil {
		c.run()
		return nil, nil, err
	}
	deps.Cache = entryCache

	users, err := initUserStore(ctx, cfg, rdb, logger)
	if err != nil {
		c.run()
		return nil, nil, err
	}
	c.add(users.Close)
	deps.Users = users

	strategy := auth.NewJWTStrategy(cfg.Auth.Jwt, logger)
	deps.Client = providers.NewAccountServiceClient(
		cfg.AccountService,
		func() (string, error) { return strategy.GenerateServiceToken(ServiceSubject) },
		logger,
	)

	return deps, c.run, nil
}

// lazyRedis opens one shared client the first time a component asks for it.
type lazyRedis struct {
	cfg     *config.Redis
	closers *closers
	client  *redis.Client
}

func (l *lazyRedis) get(ctx context.Context) (*redis.Client, error) {
	if l.client != nil {
		return l.client, nil
	}
	client, err := infra.NewRedisClient(ctx, l.cfg)
	if err != nil {
		return nil, err
	}
	l.closers.add(client.Close)
	l.client = client
	return client, nil
}

func (l *lazyRedis) prefix() string {
	if l.cfg == nil {
		return ""
	}
	return l.cfg.KeyPrefix
}

func initLedger(ctx context.Context, cfg *config.App, c *closers, logger *slog.Logger) (ledgerrepo.Repository, error) {
	backend := "postgres"
	if cfg.Ledger != nil && cfg.Ledger.Backend != "" {
		backend = cfg.Ledger.Backend
	}
	logger.Info("Initializing ledger store", "backend", backend)

	switch backend {
	case "memory":
		return memory.NewLedgerStore(), nil
	case "postgres":
		db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
		if err != nil {
			return nil, fmt.Errorf("ledger store: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.add(sqlDB.Close)
		}
		if cfg.DB.AutoMigrate {
			if err := infra.RunMigrations(db, logger); err != nil {
				return nil, err
			}
		}
		return ledger.New(db), nil
	case "mongo":
		client, err := infra.NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("ledger store: %w", err)
		}
		c.add(func() error { return client.Disconnect(context.Background()) })
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		if err := ledger.EnsureIndexes(ctx, coll); err != nil {
			return nil, fmt.Errorf("ledger store: %w", err)
		}
		return ledger.NewMongo(coll), nil
	}
	return nil, fmt.Errorf("unsupported ledger backend %q", backend)
}

// initEventBus selects the outcome event transport. When a redis or kafka
// transport cannot be reached the in-memory bus is used instead.
func initEventBus(ctx context.Context, cfg *config.App, rdb *lazyRedis, logger *slog.Logger) (eventbus.Bus, error) {
	ebCfg := cfg.EventBus
	if ebCfg == nil {
		ebCfg = &config.EventBus{Driver: "memory"}
	}

	switch ebCfg.Driver {
	case "", "memory":
		return infra_eventbus.NewWithMemory(logger), nil
	case "redis":
		if rdb.cfg == nil || rdb.cfg.URL == "" {
			return nil, fmt.Errorf("redis event bus requires REDIS_URL")
		}
		client, err := rdb.get(ctx)
		if err == nil {
			var bus *infra_eventbus.RedisEventBus
			bus, err = infra_eventbus.NewWithRedis(client, ebCfg.Stream, ebCfg.Group, logger)
			if err == nil {
				return bus, nil
			}
		}
		logger.Warn("Redis event bus unavailable, falling back to memory", "error", err)
		return infra_eventbus.NewWithMemory(logger), nil
	case "kafka":
		if ebCfg.KafkaBrokers == "" {
			return nil, fmt.Errorf("kafka event bus requires EVENTBUS_KAFKA_BROKERS")
		}
		bus, err := infra_eventbus.NewWithKafka(ebCfg.KafkaBrokers, infra_eventbus.KafkaEventBusConfig{
			Topic:   ebCfg.KafkaTopic,
			GroupID: ebCfg.Group,
		}, logger)
		if err != nil {
			logger.Warn("Kafka event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		return bus, nil
	}
	return nil, fmt.Errorf("unsupported event bus driver %q", ebCfg.Driver)
}

func initCache(
	ctx context.Context,
	cfg *config.App,
	rdb *lazyRedis,
	c *closers,
	logger *slog.Logger,
) (cache.EntryCache, error) {
	if rdb.cfg == nil || rdb.cfg.URL == "" {
		mc := infra_cache.NewMemoryCache()
		c.add(mc.Close)
		return mc, nil
	}
	client, err := rdb.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("entry cache: %w", err)
	}
	prefix := rdb.prefix()
	if cfg.Cache != nil {
		prefix += cfg.Cache.Prefix
	}
	return infra_cache.NewRedisCache(client, prefix, logger), nil
}

func initUserStore(ctx context.Context, cfg *config.App, rdb *lazyRedis, logger *slog.Logger) (repouser.Store, error) {
	store := "memory"
	if cfg.Auth != nil && cfg.Auth.Store != "" {
		store = cfg.Auth.Store
	}
	switch store {
	case "memory":
		logger.Warn("Using in-memory identity store; users are not shared between services")
		return infra_user.NewMemoryStore(), nil
	case "redis":
		client, err := rdb.get(ctx)
		if err != nil {
			return nil, fmt.Errorf("identity store: %w", err)
		}
		return infra_user.NewRedisStore(client, rdb.prefix()), nil
	}
	return nil, fmt.Errorf("unsupported identity store %q", store)
}
