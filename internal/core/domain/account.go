package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind distinguishes customer accounts from the bank's own reserve accounts.
type AccountKind string

const (
	// KindUser is a customer-owned account.
	KindUser AccountKind = "USER"
	// KindReserve is a currency-specific account acting as the system's
	// counterparty for deposits and withdrawals. There is one per supported
	// currency and it has no owning user.
	KindReserve AccountKind = "RESERVE"
)

// Account represents a currency-denominated balance held by a user or by the
// bank reserve. Balances are stored as exact decimals and must never be
// negative at any committed state; only the ledger repository's conditional
// balance update may mutate them.
type Account struct {
	AccountID    string          `json:"accountID"`
	UserID       string          `json:"userID,omitempty"` // empty for reserve accounts
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"` // ISO 4217, 3 letters
	Kind         AccountKind     `json:"kind"`
	AuditFields
}

// IsReserve reports whether the account is a bank reserve account.
func (a Account) IsReserve() bool {
	return a.Kind == KindReserve
}
