package services

import (
	"context"

	"github.com/fintrax/ledger-api/internal/core/domain"
)

// AdminSvcFacade provides the read-only listing operations used by the admin
// API. It never mutates ledger state.
type AdminSvcFacade interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}
