// Package app assembles the services of the account and transaction
// processes from their infrastructure dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/fintech-ledger/pkg/cache"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/eventbus"
	"github.com/amirasaad/fintech-ledger/pkg/handler"
	"github.com/amirasaad/fintech-ledger/pkg/repository"
	ledgerrepo "github.com/amirasaad/fintech-ledger/pkg/repository/ledger"
	repouser "github.com/amirasaad/fintech-ledger/pkg/repository/user"
	"github.com/amirasaad/fintech-ledger/pkg/service/account"
	"github.com/amirasaad/fintech-ledger/pkg/service/auth"
	"github.com/amirasaad/fintech-ledger/pkg/service/balance"
	"github.com/amirasaad/fintech-ledger/pkg/service/transaction"
)

// AccountDeps contains the infrastructure of the account service process.
type AccountDeps struct {
	Uow    repository.UnitOfWork
	Users  repouser.Store
	Logger *slog.Logger
}

// Accounts is the account service process: account records and the
// balance mutation endpoint.
type Accounts struct {
	Deps           *AccountDeps
	Config         *config.App
	AuthService    *auth.Service
	AccountService *account.Service
	BalanceService *balance.Service
}

// NewAccounts builds the account service process.
func NewAccounts(deps *AccountDeps, cfg *config.App) *Accounts {
	return &Accounts{
		Deps:           deps,
		Config:         cfg,
		AuthService:    newAuthService(deps.Users, cfg, deps.Logger),
		AccountService: account.New(deps.Uow, deps.Logger),
		BalanceService: balance.New(deps.Uow, deps.Logger),
	}
}

// TransactionDeps contains the infrastructure of the transaction service process.
type TransactionDeps struct {
	Ledger   ledgerrepo.Repository
	Client   transaction.BalanceClient
	EventBus eventbus.Bus
	Cache    cache.EntryCache
	Users    repouser.Store
	Logger   *slog.Logger
}

// Transactions is the transaction service process: the orchestrator, its
// reconciler, and the consumer of ledger outcome events.
type Transactions struct {
	Deps               *TransactionDeps
	Config             *config.App
	AuthService        *auth.Service
	TransactionService *transaction.Service
	Outcomes           *handler.IdempotencyTracker
}

// NewTransactions builds the transaction service process and registers the
// outcome event handlers on the bus.
func NewTransactions(deps *TransactionDeps, cfg *config.App) *Transactions {
	a := &Transactions{
		Deps:        deps,
		Config:      cfg,
		AuthService: newAuthService(deps.Users, cfg, deps.Logger),
	}
	a.setupEventBus()

	txDeps := transaction.Deps{
		Repo:      deps.Ledger,
		Client:    deps.Client,
		Bus:       deps.EventBus,
		Cache:     deps.Cache,
		Reconcile: cfg.Reconcile,
		Logger:    deps.Logger,
	}
	if cfg.Cache != nil {
		txDeps.CacheTTL = cfg.Cache.TTL
	}
	a.TransactionService = transaction.New(txDeps)
	return a
}

// setupEventBus registers the ledger outcome consumers.
func (a *Transactions) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	a.Outcomes = handler.RegisterOutcomeHandlers(a.Deps.EventBus, a.Deps.Logger)
}

func newAuthService(users repouser.Store, cfg *config.App, logger *slog.Logger) *auth.Service {
	authMap := map[string]func() *auth.Service{
		"jwt": func() *auth.Service {
			return auth.NewWithJWT(users, cfg.Auth.Jwt, logger)
		},
	}
	if authFactory, ok := authMap[cfg.Auth.Strategy]; ok {
		return authFactory()
	}
	logger.Warn("Unknown auth strategy, falling back to jwt", "strategy", cfg.Auth.Strategy)
	return auth.NewWithJWT(users, cfg.Auth.Jwt, logger)
}
