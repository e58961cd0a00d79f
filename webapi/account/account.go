package account

import (
	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/amirasaad/fintech-ledger/pkg/middleware"
	accountsvc "github.com/amirasaad/fintech-ledger/pkg/service/account"
	authsvc "github.com/amirasaad/fintech-ledger/pkg/service/auth"
	balancesvc "github.com/amirasaad/fintech-ledger/pkg/service/balance"
	"github.com/amirasaad/fintech-ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Routes registers the account service endpoints. All routes require a valid
// bearer token; the balance mutation endpoints additionally require a
// service token.
//
// Routes:
//   - POST /api/accounts                                  : Open an account for the caller.
//   - GET  /api/accounts                                  : List the caller's accounts.
//   - GET  /api/accounts/:id                              : Fetch one account.
//   - PUT  /api/accounts/balance                          : Apply a balance mutation.
//   - POST /api/accounts/mutations/:reference_id/resolve  : Resolve or fence a mutation reference.
func Routes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	balanceSvc *balancesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	api := app.Group("/api/accounts", middleware.JwtProtected(cfg.Auth.Jwt))
	api.Put("/balance", middleware.ServiceOnly(), UpdateBalance(balanceSvc))
	api.Post("/mutations/:reference_id/resolve", middleware.ServiceOnly(), ResolveMutation(balanceSvc))
	api.Post("/", CreateAccount(accountSvc, authSvc))
	api.Get("/", ListAccounts(accountSvc, authSvc))
	api.Get("/:id", GetAccount(accountSvc))
}

// CreateAccount returns a Fiber handler for opening an account for the current user.
// @Summary Open a new account
// @Description Opens an ACTIVE account with a zero balance. The currency defaults to USD.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} common.Response "Account created successfully"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/accounts [post]
// @Security Bearer
func CreateAccount(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Infof("Creating new account")
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			log.Errorf("Failed to parse user ID from token: %v", err)
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.Context(), dto.AccountCreate{
			OwnerID:  userID,
			Type:     input.AccountType,
			Currency: input.Currency,
		})
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		log.Infof("Account created: %s", a.ID)
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountResponse(a))
	}
}

// ListAccounts returns a Fiber handler listing the current user's accounts.
// @Summary List accounts
// @Description Lists the accounts owned by the authenticated user.
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response "Accounts fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "No accounts"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/accounts [get]
// @Security Bearer
func ListAccounts(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			log.Errorf("Failed to parse user ID from token: %v", err)
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		accounts, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", ToAccountResponses(accounts))
	}
}

// GetAccount returns a Fiber handler fetching one account by id.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response "Account fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account ID"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/accounts/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		a, err := accountSvc.GetAccount(c.Context(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountResponse(a))
	}
}

// UpdateBalance returns a Fiber handler applying one balance mutation.
// Business rejections are answered with 200 and success false.
// @Summary Apply a balance mutation
// @Description Deposits, withdraws or transfers atomically. Called by the transaction service with a service token.
// @Tags balance
// @Accept json
// @Produce json
// @Param request body BalanceMutationRequest true "Mutation"
// @Success 200 {object} common.Response "Mutation outcome"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 403 {object} common.ProblemDetails "Not a service token"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/accounts/balance [put]
// @Security Bearer
func UpdateBalance(balanceSvc *balancesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[BalanceMutationRequest](c)
		if input == nil {
			return err
		}
		m := input.ToMutation()
		log.Infof("Balance mutation: %s %s on %s", m.TransactionType, m.Amount, m.AccountID)
		result, err := balanceSvc.Apply(c.Context(), m)
		if err != nil {
			log.Errorf("Balance mutation failed: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to update balance", err)
		}
		message := "Balance updated"
		if !result.Success {
			message = "Balance update rejected"
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, result)
	}
}

// ResolveMutation returns a Fiber handler reporting the recorded outcome of a
// mutation reference, fencing the reference first when nothing was recorded.
// @Summary Resolve a mutation reference
// @Tags balance
// @Produce json
// @Param reference_id path string true "Reference ID"
// @Success 200 {object} common.Response "Mutation outcome"
// @Failure 400 {object} common.ProblemDetails "Invalid reference ID"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 403 {object} common.ProblemDetails "Not a service token"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/accounts/mutations/{reference_id}/resolve [post]
// @Security Bearer
func ResolveMutation(balanceSvc *balancesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		referenceID, err := uuid.Parse(c.Params("reference_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid reference ID", err, "Reference ID must be a valid UUID", fiber.StatusBadRequest)
		}
		outcome, err := balanceSvc.Resolve(c.Context(), referenceID)
		if err != nil {
			log.Errorf("Resolve failed for %s: %v", referenceID, err)
			return common.ProblemDetailsJSON(c, "Failed to resolve mutation", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Mutation resolved", outcome)
	}
}
