package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// adminService provides the read-only listing operations behind the admin API.
type adminService struct {
	userRepo    portsrepo.UserReader
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo portsrepo.UserReader, accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader) portssvc.AdminSvcFacade {
	return &adminService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.AdminSvcFacade = (*adminService)(nil)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.ListUsers(ctx, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *adminService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}

func (s *adminService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *adminService) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	transactions, token, err := s.ledgerRepo.ListTransactions(ctx, clampLimit(limit), nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, token, nil
}

func (s *adminService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}
	return txn, nil
}
