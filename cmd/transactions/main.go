package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/amirasaad/fintech-ledger/infra/initializer"
	"github.com/amirasaad/fintech-ledger/pkg/app"
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/processor"
	"github.com/amirasaad/fintech-ledger/webapi"
	"github.com/amirasaad/fintech-ledger/webapi/common"
	log "github.com/charmbracelet/log"
)

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

	deps, cleanup, err := initializer.InitializeTransactionDeps(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer cleanup()
	logger := deps.Logger

	transactions := app.NewTransactions(deps, cfg)
	fiberApp := webapi.SetupTransactionsApp(transactions)

	var wg sync.WaitGroup
	if cfg.Reconcile != nil && cfg.Reconcile.Enabled {
		reconciler, err := processor.NewReconcileProcessor(
			transactions.TransactionService,
			cfg.Reconcile.Interval,
			logger,
		)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			reconciler.Run(ctx)
		}()
	} else {
		logger.Warn("Reconciler disabled; pending entries will not be finalized")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		stop()
		wg.Wait()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	logger.Info("Starting transactions server",
		"env", cfg.Env,
		"address", addr,
		"accountService", cfg.AccountService.URL,
	)

	err = common.Serve(ctx, fiberApp, ln, cfg.Server.ShutdownTimeout)
	stop()
	wg.Wait()
	if err != nil {
		return err
	}
	logger.Info("Transactions server stopped")
	return nil
}
