package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fintrax/ledger-api/internal/apperrors"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
	"github.com/fintrax/ledger-api/internal/dto"
	"github.com/fintrax/ledger-api/internal/middleware"
)

// exchangeRateHandler handles exchange rate reads and admin writes.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers rate lookup for all authenticated users
// and rate creation for admins.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("/:base/:target", h.getRate)
		rates.POST("", middleware.AdminRequired(), h.createRate)
	}
}

func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	base := c.Param("base")
	target := c.Param("target")

	rate, err := h.rateService.GetRate(c.Request.Context(), base, target)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrExchangeRateMissing):
			logger.Warn("Exchange rate not found", slog.String("base", base), slog.String("target", target))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"baseCurrency": base, "targetCurrency": target, "rate": rate})
}

func (h *exchangeRateHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate must be positive"})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), req.BaseCurrencyCode, req.TargetCurrencyCode, req.Rate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate created",
		slog.String("base", rate.BaseCurrencyCode),
		slog.String("target", rate.TargetCurrencyCode),
		slog.String("rate", rate.Rate.String()),
	)
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}
