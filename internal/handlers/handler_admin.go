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

// adminHandler exposes the read-only admin listings.
type adminHandler struct {
	adminService portssvc.AdminSvcFacade
}

func newAdminHandler(as portssvc.AdminSvcFacade) *adminHandler {
	return &adminHandler{
		adminService: as,
	}
}

// registerAdminRoutes registers the admin listing routes behind the admin
// role check.
func registerAdminRoutes(rg *gin.RouterGroup, adminService portssvc.AdminSvcFacade) {
	h := newAdminHandler(adminService)

	admin := rg.Group("/admin", middleware.AdminRequired())
	{
		admin.GET("/users", h.listUsers)
		admin.GET("/users/:id", h.getUser)
		admin.GET("/accounts", h.listAccounts)
		admin.GET("/transactions", h.listTransactions)
		admin.GET("/transactions/:id", h.getTransaction)
	}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func (h *adminHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pageParams(c)

	users, err := h.adminService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	resp := dto.ListUsersResponse{Users: make([]dto.UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = dto.ToUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *adminHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	user, err := h.adminService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *adminHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pageParams(c)

	accounts, err := h.adminService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	resp := dto.ListAccountsResponse{Accounts: make([]dto.AccountSummary, len(accounts))}
	for i, a := range accounts {
		resp.Accounts[i] = dto.ToAccountSummary(a)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *adminHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	transactions, newToken, err := h.adminService.ListTransactions(c.Request.Context(), limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
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

func (h *adminHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.adminService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
