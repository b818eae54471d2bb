package repositories

import (
	"context"

	"github.com/fintrax/ledger-api/internal/core/domain"
)

// LedgerWriter owns the Apply phase of a ledger operation.
type LedgerWriter interface {
	// PostTransaction applies the transaction's balance changes and appends
	// the transaction record with its entries as one atomic unit: either every
	// mutation commits or none is observable. Account rows are locked for the
	// duration of the unit and balance updates are conditional on staying
	// non-negative (apperrors.ErrInsufficientFunds on violation).
	PostTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerReader defines read operations over the append-only transaction log.
type LedgerReader interface {
	// FindTransactionByID retrieves one transaction with its entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a token-paginated list of transactions,
	// newest first. It returns the transactions and a token for the next page.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccountID retrieves a token-paginated list of
	// transactions touching the given account, newest first.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerRepository combines the transaction log interfaces.
type LedgerRepository interface {
	LedgerWriter
	LedgerReader
}
