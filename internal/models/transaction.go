package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind mirrors domain.TransactionKind for storage.
type TransactionKind string

const (
	Deposit    TransactionKind = "DEPOSIT"
	Withdrawal TransactionKind = "WITHDRAWAL"
	Transfer   TransactionKind = "TRANSFER"
)

// Transaction is the storage representation of a ledger transaction header.
// Entries live in their own table keyed by transaction_id.
type Transaction struct {
	TransactionID   string
	FromAccountID   string
	ToAccountID     string
	Amount          decimal.Decimal
	CurrencyCode    string
	ConvertedAmount decimal.Decimal
	ExchangeRate    decimal.Decimal
	Kind            TransactionKind
	CreatedAt       time.Time
}

// Entry is the storage representation of one signed transaction leg.
type Entry struct {
	EntryID       string
	TransactionID string
	AccountID     string
	Amount        decimal.Decimal
	CurrencyCode  string
}
