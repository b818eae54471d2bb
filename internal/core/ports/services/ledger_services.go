package services

import (
	"context"

	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the ledger transaction engine. Each mutating operation
// executes as a single atomic unit: balance mutations across the involved
// accounts plus the transaction append all succeed together or none are
// observed. Expected business failures (insufficient funds, missing accounts)
// are returned as apperrors sentinels, not treated as fatal.
type LedgerSvcFacade interface {
	// Deposit credits amount to the account and debits the matching currency
	// reserve, appending a DEPOSIT transaction.
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error)

	// Withdraw debits amount from the account and credits the matching
	// currency reserve, appending a WITHDRAWAL transaction.
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error)

	// Transfer moves amount (in the source account's currency) from one
	// account to another, converting through the stored exchange rate when the
	// currencies differ, and appends a TRANSFER transaction.
	Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (*domain.Transaction, error)

	// GetBalance returns the account's committed balance and currency.
	GetBalance(ctx context.Context, accountID string) (*domain.Account, error)

	// GetProfile returns a user together with all of their accounts.
	GetProfile(ctx context.Context, userID string) (*domain.User, []domain.Account, error)

	// ListAccountTransactions returns a token-paginated page of the account's
	// transaction history, newest first. The account must belong to userID;
	// apperrors.ErrForbidden otherwise.
	ListAccountTransactions(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
