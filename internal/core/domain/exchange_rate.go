package domain

import "github.com/shopspring/decimal"

// ExchangeRate maps an ordered currency pair to a conversion multiplier:
// 1 BaseCurrencyCode = Rate TargetCurrencyCode. At most one active rate exists
// per ordered pair; the identity pair is implicitly 1 without a stored record.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	AuditFields
}
