package services

import (
	"context"

	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateSvcFacade resolves conversion multipliers for ordered currency
// pairs. It is read-only from the ledger engine's perspective.
type ExchangeRateSvcFacade interface {
	// GetRate returns the multiplier for converting from one currency to
	// another. The identity pair resolves to 1 without a store lookup; a
	// missing pair is reported as apperrors.ErrExchangeRateMissing.
	GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (decimal.Decimal, error)

	// CreateExchangeRate stores a new rate for an ordered currency pair.
	CreateExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string, rate decimal.Decimal) (*domain.ExchangeRate, error)
}
