package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/SscSPs/store_credit_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", customerOnly, h.getMyAccount)
		accounts.GET("/me/available-credit", customerOnly, h.getMyAvailableCredit)

		accounts.POST("", adminOnly, h.createAccount)
		accounts.GET("", adminOnly, h.listAccounts)
		accounts.GET("/:id", adminOnly, h.getAccount)
		accounts.PUT("/:id", adminOnly, h.updateAccount)
		accounts.DELETE("/:id", adminOnly, h.deleteAccount)
		accounts.PUT("/:id/credit-limit", adminOnly, h.setCreditLimit)
		accounts.PUT("/:id/activate", adminOnly, h.changeStatus(domain.AccountActive))
		accounts.PUT("/:id/suspend", adminOnly, h.changeStatus(domain.AccountSuspended))
		accounts.PUT("/:id/close", adminOnly, h.changeStatus(domain.AccountClosed))
		accounts.POST("/:id/charges", adminOnly, h.charge)
		accounts.POST("/:id/credits", adminOnly, h.credit)
		accounts.GET("/:id/available-credit", adminOnly, h.getAvailableCredit)
		accounts.GET("/:id/can-purchase", adminOnly, h.canPurchase)
	}
}

// createAccount godoc
// @Summary Open a credit account
// @Description Opens a store credit account for an existing user. A positive initial balance is recorded as a CHARGE.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "User already has an account"
// @Failure 500 {object} ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "account request")
		return
	}
	creatorUserID, ok := actingUser(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("owner_user_id", req.UserID))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts filtered by status, limit range and balance range.
// @Tags accounts
// @Produce  json
// @Param   status query string false "ACTIVE, SUSPENDED or CLOSED"
// @Param   minLimit query string false "Minimum credit limit"
// @Param   maxLimit query string false "Maximum credit limit"
// @Param   minBalance query string false "Minimum balance"
// @Param   maxBalance query string false "Maximum balance"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondServiceError(c, err, "list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates the opening date. Limit and status have their own endpoints.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID to update"
// @Param   account body dto.UpdateAccountRequest true "Account details to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "account request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes a CLOSED account with zero balance. Its movements are kept.
// @Tags accounts
// @Param   id path string true "Account ID to delete"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Account not closed, pending balance, or still referenced"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// setCreditLimit godoc
// @Summary Change the credit limit
// @Description Sets a new limit and records a zero-amount ADJUSTMENT movement.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit body dto.SetCreditLimitRequest true "New limit"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Negative limit"
// @Security BearerAuth
// @Router /accounts/{id}/credit-limit [put]
func (h *accountHandler) setCreditLimit(c *gin.Context) {
	var req dto.SetCreditLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "credit limit request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.SetCreditLimit(c.Request.Context(), c.Param("id"), req.CreditLimit, userID)
	if err != nil {
		respondServiceError(c, err, "set credit limit")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// changeStatus serves the activate, suspend and close endpoints.
// Closing fails with 400 while the balance is not zero.
func (h *accountHandler) changeStatus(status domain.AccountStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		account, err := h.accountService.ChangeStatus(c.Request.Context(), c.Param("id"), status, userID)
		if err != nil {
			respondServiceError(c, err, "change account status")
			return
		}
		c.JSON(http.StatusOK, dto.ToAccountResponse(account))
	}
}

// charge godoc
// @Summary Post a manual charge
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   entry body dto.LedgerEntryRequest true "Charge"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or account not active"
// @Security BearerAuth
// @Router /accounts/{id}/charges [post]
func (h *accountHandler) charge(c *gin.Context) {
	h.postEntry(c, h.accountService.Charge, "charge account")
}

// credit godoc
// @Summary Post a manual credit
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   entry body dto.LedgerEntryRequest true "Credit"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or credit exceeds the balance"
// @Security BearerAuth
// @Router /accounts/{id}/credits [post]
func (h *accountHandler) credit(c *gin.Context) {
	h.postEntry(c, h.accountService.Credit, "credit account")
}

func (h *accountHandler) postEntry(
	c *gin.Context,
	post func(ctx context.Context, entry domain.LedgerEntry) (*domain.Account, error),
	action string,
) {
	var req dto.LedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ledger entry")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	account, err := post(c.Request.Context(), req.ToLedgerEntry(c.Param("id"), userID))
	if err != nil {
		respondServiceError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAvailableCredit godoc
// @Summary Available credit of an account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AvailableCreditResponse
// @Security BearerAuth
// @Router /accounts/{id}/available-credit [get]
func (h *accountHandler) getAvailableCredit(c *gin.Context) {
	accountID := c.Param("id")
	available, err := h.accountService.AvailableCredit(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err, "compute available credit")
		return
	}
	c.JSON(http.StatusOK, dto.AvailableCreditResponse{AccountID: accountID, AvailableCredit: available})
}

// canPurchase godoc
// @Summary Check whether a purchase fits the available credit
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   amount query string true "Purchase amount"
// @Success 200 {object} dto.CanPurchaseResponse
// @Security BearerAuth
// @Router /accounts/{id}/can-purchase [get]
func (h *accountHandler) canPurchase(c *gin.Context) {
	accountID := c.Param("id")
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a decimal number"})
		return
	}
	allowed, err := h.accountService.CanPurchase(c.Request.Context(), accountID, amount)
	if err != nil {
		respondServiceError(c, err, "check purchase")
		return
	}
	c.JSON(http.StatusOK, dto.CanPurchaseResponse{AccountID: accountID, Amount: amount, CanPurchase: allowed})
}

// getMyAccount godoc
// @Summary The caller's own account
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "No account for this user"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getMyAccount(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getMyAvailableCredit godoc
// @Summary The caller's available credit
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AvailableCreditResponse
// @Security BearerAuth
// @Router /accounts/me/available-credit [get]
func (h *accountHandler) getMyAvailableCredit(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.AvailableCreditResponse{AccountID: account.AccountID, AvailableCredit: account.AvailableCredit()})
}
