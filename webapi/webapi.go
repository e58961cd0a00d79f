// Package webapi assembles the HTTP surface of both services.
// It is organized into sub-packages per resource:
// - account: account records and the balance mutation endpoints
// - transaction: ledger entry endpoints
// - auth: registration and login, served by both services
package webapi

import (
	_ "github.com/amirasaad/fintech-ledger/docs" // swagger spec
	"github.com/amirasaad/fintech-ledger/pkg/app"
	accountweb "github.com/amirasaad/fintech-ledger/webapi/account"
	authweb "github.com/amirasaad/fintech-ledger/webapi/auth"
	"github.com/amirasaad/fintech-ledger/webapi/common"
	transactionweb "github.com/amirasaad/fintech-ledger/webapi/transaction"
	"github.com/gofiber/fiber/v2"
)

// SetupAccountsApp builds the fiber app of the account service.
func SetupAccountsApp(a *app.Accounts) *fiber.App {
	fiberApp := common.NewApp("Accounts API", a.Config)
	authweb.Routes(fiberApp, a.AuthService)
	accountweb.Routes(fiberApp, a.AccountService, a.BalanceService, a.AuthService, a.Config)
	return fiberApp
}

// SetupTransactionsApp builds the fiber app of the transaction service.
func SetupTransactionsApp(a *app.Transactions) *fiber.App {
	fiberApp := common.NewApp("Transactions API", a.Config)
	authweb.Routes(fiberApp, a.AuthService)
	transactionweb.Routes(fiberApp, a.TransactionService, a.Config)
	return fiberApp
}
