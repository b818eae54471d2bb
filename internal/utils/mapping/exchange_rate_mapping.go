package mapping

import (
	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/fintrax/ledger-api/internal/models"
)

// ToModelExchangeRate converts a domain exchange rate to its storage representation.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:     d.ExchangeRateID,
		BaseCurrencyCode:   d.BaseCurrencyCode,
		TargetCurrencyCode: d.TargetCurrencyCode,
		Rate:               d.Rate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainExchangeRate converts a storage exchange rate back to the domain representation.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:     m.ExchangeRateID,
		BaseCurrencyCode:   m.BaseCurrencyCode,
		TargetCurrencyCode: m.TargetCurrencyCode,
		Rate:               m.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
