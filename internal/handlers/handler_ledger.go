package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fintrax/ledger-api/internal/apperrors"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
	"github.com/fintrax/ledger-api/internal/dto"
	"github.com/fintrax/ledger-api/internal/middleware"
)

// ledgerHandler handles deposit, withdrawal, transfer and balance requests.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers the authenticated ledger routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/deposit", h.deposit)
		ledger.POST("/withdraw", h.withdraw)
		ledger.POST("/transfer", h.transfer)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/balance", h.getBalance)
		accounts.GET("/:id/transactions", h.listAccountTransactions)
	}

	rg.GET("/profile", h.getProfile)
}

// respondLedgerError maps engine errors onto HTTP statuses. Business outcomes
// stay 4xx; only persistence failures surface as 500.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		logger.Warn("Ledger target not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden ledger access", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrReserveNotFound),
		errors.Is(err, apperrors.ErrExchangeRateMissing):
		logger.Warn("Ledger validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Ledger operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process ledger operation"})
	}
}

func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.Deposit(c.Request.Context(), req.AccountID, req.Amount, req.CurrencyCode)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.Withdraw(c.Request.Context(), req.AccountID, req.Amount, req.CurrencyCode)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	account, err := h.ledgerService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(account))
}

func (h *ledgerHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	transactions, newToken, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), userID, accountID, limit, nextToken)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(transactions)),
		NextToken:    newToken,
	}
	for i := range transactions {
		resp.Transactions[i] = dto.ToTransactionResponse(&transactions[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ledgerHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, accounts, err := h.ledgerService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user, accounts))
}
