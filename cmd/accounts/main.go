package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/fintech-ledger/infra/initializer"
	"github.com/amirasaad/fintech-ledger/pkg/app"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/webapi"
	"github.com/amirasaad/fintech-ledger/webapi/common"
	log "github.com/charmbracelet/log"
)

// @title Fintech Ledger API
// @version 1.0.0
// @description Account, balance mutation and ledger entry endpoints of the fintech ledger services
// @contact.name API Support
// @license.name MIT
// @host localhost:5000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := initializer.InitializeAccountDeps(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer cleanup()
	logger := deps.Logger

	fiberApp := webapi.SetupAccountsApp(app.NewAccounts(deps, cfg))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	logger.Info("Starting accounts server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	if err := common.Serve(ctx, fiberApp, ln, cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	logger.Info("Accounts server stopped")
	return nil
}
