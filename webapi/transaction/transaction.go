package transaction

import (
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/middleware"
	transactionsvc "github.com/amirasaad/fintech-ledger/pkg/service/transaction"
	"github.com/amirasaad/fintech-ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers the transaction service endpoints.
//
// Routes:
//   - POST /api/transactions                     : Request a deposit, withdrawal or transfer.
//   - GET  /api/transactions/:id                 : Fetch one ledger entry.
//   - GET  /api/transactions/account/:account_id : List entries involving an account.
func Routes(app *fiber.App, txSvc *transactionsvc.Service, cfg *config.App) {
	api := app.Group("/api/transactions", middleware.JwtProtected(cfg.Auth.Jwt))
	api.Post("/", CreateTransaction(txSvc))
	api.Get("/account/:account_id", ListByAccount(txSvc))
	api.Get("/:id", GetTransaction(txSvc))
}

// CreateTransaction returns a Fiber handler that records a ledger entry and
// applies the balance change through the account service.
// @Summary Create a transaction
// @Description Records a PENDING entry, applies the mutation on the account service and returns the finalized entry.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction details"
// @Success 201 {object} common.Response "Transaction completed"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account or recipient not found"
// @Failure 422 {object} common.ProblemDetails "Rejected by the account service"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Failure 502 {object} common.ProblemDetails "Account service unavailable"
// @Router /api/transactions [post]
// @Security Bearer
func CreateTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		create := input.ToCreate()
		log.Infof("Create transaction: %s %s on %s", create.TransactionType, create.Amount, create.AccountID)
		entry, err := txSvc.Create(c.Context(), create)
		if err != nil {
			log.Errorf("Failed to create transaction: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction completed", ToEntryResponse(entry))
	}
}

// GetTransaction returns a Fiber handler fetching one ledger entry.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response "Transaction fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid transaction ID"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Transaction not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/transactions/{id} [get]
// @Security Bearer
func GetTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, "Transaction ID must be a valid UUID", fiber.StatusBadRequest)
		}
		entry, err := txSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", ToEntryResponse(entry))
	}
}

// ListByAccount returns a Fiber handler listing the entries where the
// account is the source or the recipient, newest first.
// @Summary List transactions of an account
// @Tags transactions
// @Produce json
// @Param account_id path string true "Account ID"
// @Success 200 {object} common.Response "Transactions fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account ID"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/transactions/account/{account_id} [get]
// @Security Bearer
func ListByAccount(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("account_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		entries, err := txSvc.ListByAccount(c.Context(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", ToEntryResponses(entries))
	}
}
