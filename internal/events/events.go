package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicTransactionCompleted is the broker topic for committed ledger transactions.
const TopicTransactionCompleted = "transaction_completed"

// TransactionCompleted is emitted after a ledger transaction commits.
type TransactionCompleted struct {
	TransactionID string          `json:"transaction_id"`
	FromAccountID string          `json:"from_account"`
	ToAccountID   string          `json:"to_account"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currency"`
	Kind          string          `json:"kind"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
