package app_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/fintech-ledger/infra/repository/memory"
	infrauser "github.com/amirasaad/fintech-ledger/infra/repository/user"
	"github.com/amirasaad/fintech-ledger/internal/fixtures/mocks"
	"github.com/amirasaad/fintech-ledger/pkg/app"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig(strategy string) *config.App {
	return &config.App{
		Auth: &config.Auth{
			Strategy: strategy,
			Jwt:      &config.Jwt{Secret: "app-secret", Expiry: time.Hour},
		},
		Cache: &config.Cache{TTL: time.Minute},
	}
}

func TestNewTransactions_RegistersOutcomeHandlers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := mocks.NewMockBus(t)
	bus.EXPECT().Register(events.EventTypeEntryCompleted, mock.Anything).Once()
	bus.EXPECT().Register(events.EventTypeEntryFailed, mock.Anything).Once()

	a := app.NewTransactions(&app.TransactionDeps{
		Ledger:   memory.NewLedgerStore(),
		Client:   mocks.NewMockBalanceClient(t),
		EventBus: bus,
		Users:    infrauser.NewMemoryStore(),
		Logger:   logger,
	}, testConfig("jwt"))

	require.NotNil(t, a.TransactionService)
	assert.NotNil(t, a.Outcomes)
	assert.NotNil(t, a.AuthService)
}

func TestNewTransactions_WithoutBus(t *testing.T) {
	a := app.NewTransactions(&app.TransactionDeps{
		Ledger: memory.NewLedgerStore(),
		Client: mocks.NewMockBalanceClient(t),
		Users:  infrauser.NewMemoryStore(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, testConfig("jwt"))

	assert.Nil(t, a.Outcomes)
	assert.NotNil(t, a.TransactionService)
}

func TestNewAccounts_UnknownStrategyFallsBackToJWT(t *testing.T) {
	a := app.NewAccounts(&app.AccountDeps{
		Uow:    memory.NewAccountStore(),
		Users:  infrauser.NewMemoryStore(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, testConfig("oauth"))

	token, err := a.AuthService.GenerateServiceToken("tests")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, a.AccountService)
	assert.NotNil(t, a.BalanceService)
}
