package repositories

import (
	"context"

	"github.com/fintrax/ledger-api/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the active rate for an ordered currency pair.
	// Returns apperrors.ErrNotFound when no rate is stored for the pair.
	FindExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepository combines the exchange rate interfaces.
type ExchangeRateRepository interface {
	ExchangeRateReader
	ExchangeRateWriter
}
