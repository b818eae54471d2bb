package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
)

// exchangeRateService resolves conversion multipliers for ordered currency pairs.
type exchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepository
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// GetRate returns the multiplier for converting fromCurrencyCode into
// toCurrencyCode. The identity pair is 1 without a stored record.
func (s *exchangeRateService) GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (decimal.Decimal, error) {
	fromCurrencyCode = strings.ToUpper(fromCurrencyCode)
	toCurrencyCode = strings.ToUpper(toCurrencyCode)
	if len(fromCurrencyCode) != 3 || len(toCurrencyCode) != 3 {
		return decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if fromCurrencyCode == toCurrencyCode {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCurrencyCode, toCurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s->%s", apperrors.ErrExchangeRateMissing, fromCurrencyCode, toCurrencyCode)
		}
		return decimal.Zero, fmt.Errorf("failed to get exchange rate: %w", err)
	}
	return rate.Rate, nil
}

// CreateExchangeRate stores a new rate for an ordered currency pair.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string, rate decimal.Decimal) (*domain.ExchangeRate, error) {
	baseCurrencyCode = strings.ToUpper(baseCurrencyCode)
	targetCurrencyCode = strings.ToUpper(targetCurrencyCode)

	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if baseCurrencyCode == targetCurrencyCode {
		return nil, fmt.Errorf("%w: base and target currency codes cannot be the same", apperrors.ErrValidation)
	}
	if len(baseCurrencyCode) != 3 || len(targetCurrencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	newRate := domain.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   baseCurrencyCode,
		TargetCurrencyCode: targetCurrencyCode,
		Rate:               rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, newRate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return &newRate, nil
}
