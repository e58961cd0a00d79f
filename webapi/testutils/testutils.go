// Package testutils wires both services in memory for HTTP level tests. The
// transaction service reaches the account service through the real HTTP
// client, served by an httptest server in front of the accounts app.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infracache "github.com/amirasaad/fintech-ledger/infra/cache"
	infraeventbus "github.com/amirasaad/fintech-ledger/infra/eventbus"
	"github.com/amirasaad/fintech-ledger/infra/providers"
	"github.com/amirasaad/fintech-ledger/infra/repository/memory"
	infrauser "github.com/amirasaad/fintech-ledger/infra/repository/user"
	"github.com/amirasaad/fintech-ledger/pkg/app"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/service/auth"
	"github.com/amirasaad/fintech-ledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Envelope mirrors common.Response with typed data.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// E2ETestSuite runs both services against in-memory stores.
type E2ETestSuite struct {
	suite.Suite
	Cfg             *config.App
	AccountsApp     *fiber.App
	TransactionsApp *fiber.App
	AccountsServer  *httptest.Server
	Accounts        *app.Accounts
	Transactions    *app.Transactions
	AccountStore    *memory.AccountStore
	LedgerStore     *memory.LedgerStore
	Bus             *infraeventbus.MemoryEventBus
	Cache           *infracache.MemoryCache
}

// SetupTest builds a fresh pair of services for every test.
func (s *E2ETestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Cfg = &config.App{
		Env: "test",
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt: &config.Jwt{
				Secret: "e2e-secret",
				Expiry: time.Hour,
				Issuer: "fintech-ledger",
			},
		},
		Cache: &config.Cache{TTL: time.Minute},
		Reconcile: &config.Reconcile{
			StaleAfter: time.Minute,
			Lease:      time.Minute,
			BatchSize:  10,
			BaseDelay:  time.Second,
			MaxDelay:   time.Minute,
		},
	}

	users := infrauser.NewMemoryStore()
	s.AccountStore = memory.NewAccountStore()
	s.Accounts = app.NewAccounts(&app.AccountDeps{
		Uow:    s.AccountStore,
		Users:  users,
		Logger: logger,
	}, s.Cfg)
	s.AccountsApp = webapi.SetupAccountsApp(s.Accounts)
	s.AccountsServer = httptest.NewServer(adaptor.FiberApp(s.AccountsApp))

	s.Cfg.AccountService = &config.AccountService{
		URL:     s.AccountsServer.URL + "/api/accounts",
		Timeout: 5 * time.Second,
	}
	strategy := auth.NewJWTStrategy(s.Cfg.Auth.Jwt, logger)
	client := providers.NewAccountServiceClient(s.Cfg.AccountService, func() (string, error) {
		return strategy.GenerateServiceToken("transactions")
	}, logger)

	s.LedgerStore = memory.NewLedgerStore()
	s.Bus = infraeventbus.NewWithMemory(logger)
	s.Cache = infracache.NewMemoryCache()
	s.Transactions = app.NewTransactions(&app.TransactionDeps{
		Ledger:   s.LedgerStore,
		Client:   client,
		EventBus: s.Bus,
		Cache:    s.Cache,
		Users:    users,
		Logger:   logger,
	}, s.Cfg)
	s.TransactionsApp = webapi.SetupTransactionsApp(s.Transactions)
}

// TearDownTest stops the account service server.
func (s *E2ETestSuite) TearDownTest() {
	if s.AccountsServer != nil {
		s.AccountsServer.Close()
	}
	if s.Cache != nil {
		_ = s.Cache.Close()
	}
}

// MakeRequest is a helper for making HTTP requests against one of the apps.
func (s *E2ETestSuite) MakeRequest(target *fiber.App, method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := target.Test(req, int((10 * time.Second).Milliseconds()))
	s.Require().NoError(err)
	return resp
}

// CreateTestUser registers a user with a random name and returns its
// username. The password is always "password123".
func (s *E2ETestSuite) CreateTestUser() string {
	username := fmt.Sprintf("testuser_%s", uuid.New().String()[:8])
	body := fmt.Sprintf(`{"username":"%s","password":"password123"}`, username)
	resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/auth/register", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	return username
}

// LoginUser logs in through the accounts app and returns the JWT token.
func (s *E2ETestSuite) LoginUser(username string) string {
	body := fmt.Sprintf(`{"username":"%s","password":"password123"}`, username)
	resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/auth/login", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := DecodeData[map[string]string](s.T(), resp)
	s.Require().NotEmpty(data["token"])
	return data["token"]
}

// ServiceToken returns a token accepted by the balance mutation endpoints.
func (s *E2ETestSuite) ServiceToken() string {
	token, err := s.Accounts.AuthService.GenerateServiceToken("tests")
	s.Require().NoError(err)
	return token
}

// CreateAccount opens an account for the token's user and returns its id.
func (s *E2ETestSuite) CreateAccount(token, accountType string) string {
	body := fmt.Sprintf(`{"account_type":"%s"}`, accountType)
	resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/api/accounts", body, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	data := DecodeData[map[string]any](s.T(), resp)
	id, ok := data["id"].(string)
	s.Require().True(ok)
	return id
}

// DecodeData reads the success envelope and returns its data. The response
// body is closed.
func DecodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var envelope Envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

// DecodeProblem reads a problem details body. The response body is closed.
func DecodeProblem(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var pd map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
