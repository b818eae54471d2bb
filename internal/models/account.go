package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind mirrors domain.AccountKind for storage.
type AccountKind string

const (
	KindUser    AccountKind = "USER"
	KindReserve AccountKind = "RESERVE"
)

// Account is the storage representation of a ledger account.
type Account struct {
	AccountID    string
	UserID       string // stored as NULL for reserve accounts
	Balance      decimal.Decimal
	CurrencyCode string
	Kind         AccountKind
	AuditFields
}

// AuditFields holds storage-level audit columns.
type AuditFields struct {
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}
