package models

import "github.com/shopspring/decimal"

// ExchangeRate is the storage representation of a currency pair rate.
type ExchangeRate struct {
	ExchangeRateID     string
	BaseCurrencyCode   string
	TargetCurrencyCode string
	Rate               decimal.Decimal
	AuditFields
}
