package dto

import (
	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest is the payload for storing a new currency pair rate.
type CreateExchangeRateRequest struct {
	BaseCurrencyCode   string          `json:"baseCurrency" binding:"required,len=3"`
	TargetCurrencyCode string          `json:"targetCurrency" binding:"required,len=3"`
	Rate               decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the transport shape of an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID     string          `json:"exchangeRateId"`
	BaseCurrencyCode   string          `json:"baseCurrency"`
	TargetCurrencyCode string          `json:"targetCurrency"`
	Rate               decimal.Decimal `json:"rate"`
}

// ToExchangeRateResponse maps a domain exchange rate to its transport shape.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:     r.ExchangeRateID,
		BaseCurrencyCode:   r.BaseCurrencyCode,
		TargetCurrencyCode: r.TargetCurrencyCode,
		Rate:               r.Rate,
	}
}
