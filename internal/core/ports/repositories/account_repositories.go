package repositories

import (
	"context"
	"time"

	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindReserveAccount retrieves the reserve account for a currency.
	// Returns apperrors.ErrReserveNotFound when no reserve exists.
	FindReserveAccount(ctx context.Context, currencyCode string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of all accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data. Accounts are never
// deleted and their balances are only mutated through ApplyBalanceChangesInTx.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines the operations the ledger repository uses
// inside its atomic unit.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within the given transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies signed balance deltas to accounts within
	// the given transaction. Each update is conditional on the resulting
	// balance staying non-negative, evaluated server-side; a violated
	// condition is reported as apperrors.ErrInsufficientFunds and must abort
	// the whole transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
