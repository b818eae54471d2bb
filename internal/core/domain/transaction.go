package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the ledger operation that produced a transaction.
type TransactionKind string

const (
	Deposit    TransactionKind = "DEPOSIT"
	Withdrawal TransactionKind = "WITHDRAWAL"
	Transfer   TransactionKind = "TRANSFER"
)

var (
	ErrEntriesUnbalanced = errors.New("transaction entries do not balance to zero")
	ErrEntriesMinCount   = errors.New("transaction must have at least one debit and one credit entry")
)

// Entry is one signed leg of a transaction. Negative amounts are debits,
// positive amounts are credits. Entries are owned by their parent transaction
// and are never referenced independently.
type Entry struct {
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// IsDebit reports whether the entry removes funds from its account.
func (e Entry) IsDebit() bool {
	return e.Amount.IsNegative()
}

// Transaction is an immutable record of one ledger operation. The principal
// Amount is denominated in the source currency; ConvertedAmount is the
// destination-currency amount actually credited (equal to Amount when no
// conversion occurred, with ExchangeRate 1).
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	FromAccountID   string          `json:"fromAccountID"`
	ToAccountID     string          `json:"toAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	Kind            TransactionKind `json:"kind"`
	Entries         []Entry         `json:"entries"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Validate enforces the conservation invariant: the entries list contains at
// least one debit and one credit, and sums to zero when every leg is expressed
// in the transaction's principal currency. Foreign-currency legs are converted
// back through the applied exchange rate.
func (t Transaction) Validate() error {
	if len(t.Entries) < 2 {
		return ErrEntriesMinCount
	}

	var hasDebit, hasCredit bool
	sum := decimal.Zero
	for _, entry := range t.Entries {
		if entry.Amount.IsZero() {
			return fmt.Errorf("entry for account %s has zero amount", entry.AccountID)
		}
		if entry.IsDebit() {
			hasDebit = true
		} else {
			hasCredit = true
		}

		if entry.CurrencyCode == t.CurrencyCode {
			sum = sum.Add(entry.Amount)
			continue
		}
		if t.ExchangeRate.IsZero() {
			return fmt.Errorf("entry for account %s uses currency %s but no exchange rate was applied", entry.AccountID, entry.CurrencyCode)
		}
		sum = sum.Add(entry.Amount.Div(t.ExchangeRate))
	}

	if !hasDebit || !hasCredit {
		return ErrEntriesMinCount
	}
	if !sum.IsZero() {
		return fmt.Errorf("%w: sum is %s %s", ErrEntriesUnbalanced, sum.String(), t.CurrencyCode)
	}
	return nil
}

// BalanceChanges returns the net balance delta per account implied by the
// entries, each delta denominated in that account's own currency.
func (t Transaction) BalanceChanges() map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, len(t.Entries))
	for _, entry := range t.Entries {
		changes[entry.AccountID] = changes[entry.AccountID].Add(entry.Amount)
	}
	return changes
}
