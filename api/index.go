// Package handler exposes the account service as a single serverless HTTP handler.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/amirasaad/fintech-ledger/infra/initializer"
	"github.com/amirasaad/fintech-ledger/pkg/app"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once     sync.Once
	serveApp http.HandlerFunc
	initErr  error
)

// Handler is the main entry point of the application.
// Think of it like the main() method
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() { serveApp, initErr = handler() })
	if initErr != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	serveApp.ServeHTTP(w, r)
}

// building the fiber application
func handler() (http.HandlerFunc, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load application configuration", "error", err)
		return nil, err
	}
	deps, _, err := initializer.InitializeAccountDeps(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize dependencies", "error", err)
		return nil, err
	}
	return adaptor.FiberApp(webapi.SetupAccountsApp(app.NewAccounts(deps, cfg))), nil
}
