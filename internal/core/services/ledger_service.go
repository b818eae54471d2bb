package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
	"github.com/fintrax/ledger-api/internal/events"
	"github.com/fintrax/ledger-api/internal/middleware"
)

// ledgerService is the ledger transaction engine. It is stateless: all state
// lives behind the injected repositories, and every mutating operation runs as
// one atomic unit owned by the ledger repository's PostTransaction.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	userRepo    portsrepo.UserReader
	rateSvc     portssvc.ExchangeRateSvcFacade
	publisher   portssvc.EventPublisher // optional, best-effort
}

// NewLedgerService creates a new ledger engine. publisher may be nil.
func NewLedgerService(
	accountRepo portsrepo.AccountRepository,
	ledgerRepo portsrepo.LedgerRepository,
	userRepo portsrepo.UserReader,
	rateSvc portssvc.ExchangeRateSvcFacade,
	publisher portssvc.EventPublisher,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		rateSvc:     rateSvc,
		publisher:   publisher,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Deposit credits amount to the account and debits the currency reserve.
func (s *ledgerService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currencyCode = strings.ToUpper(currencyCode)

	// Validate phase: read-only, nothing is mutated on any failure below.
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if account.CurrencyCode != currencyCode {
		return nil, fmt.Errorf("%w: deposit currency %s does not match account currency %s", apperrors.ErrValidation, currencyCode, account.CurrencyCode)
	}

	reserve, err := s.accountRepo.FindReserveAccount(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrReserveNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrReserveNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to load reserve account for %s: %w", currencyCode, err)
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		FromAccountID:   reserve.AccountID,
		ToAccountID:     account.AccountID,
		Amount:          amount,
		CurrencyCode:    currencyCode,
		ConvertedAmount: amount,
		ExchangeRate:    decimal.NewFromInt(1),
		Kind:            domain.Deposit,
		Entries: []domain.Entry{
			{AccountID: reserve.AccountID, Amount: amount.Neg(), CurrencyCode: currencyCode},
			{AccountID: account.AccountID, Amount: amount, CurrencyCode: currencyCode},
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.apply(ctx, txn); err != nil {
		return nil, err
	}

	logger.Info("Deposit posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", account.AccountID),
		slog.String("amount", amount.String()),
		slog.String("currency", currencyCode),
	)
	s.publishCompleted(ctx, txn)
	return &txn, nil
}

// Withdraw debits amount from the account and credits the currency reserve.
func (s *ledgerService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currencyCode = strings.ToUpper(currencyCode)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if account.CurrencyCode != currencyCode {
		return nil, fmt.Errorf("%w: withdrawal currency %s does not match account currency %s", apperrors.ErrValidation, currencyCode, account.CurrencyCode)
	}

	// Fast-fail only. The authoritative check is the conditional balance
	// update inside the atomic unit, which also closes the read-then-act race
	// between concurrent withdrawals.
	if account.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, account.Balance.String(), amount.String())
	}

	reserve, err := s.accountRepo.FindReserveAccount(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrReserveNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrReserveNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to load reserve account for %s: %w", currencyCode, err)
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		FromAccountID:   account.AccountID,
		ToAccountID:     reserve.AccountID,
		Amount:          amount,
		CurrencyCode:    currencyCode,
		ConvertedAmount: amount,
		ExchangeRate:    decimal.NewFromInt(1),
		Kind:            domain.Withdrawal,
		Entries: []domain.Entry{
			{AccountID: account.AccountID, Amount: amount.Neg(), CurrencyCode: currencyCode},
			{AccountID: reserve.AccountID, Amount: amount, CurrencyCode: currencyCode},
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.apply(ctx, txn); err != nil {
		return nil, err
	}

	logger.Info("Withdrawal posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", account.AccountID),
		slog.String("amount", amount.String()),
		slog.String("currency", currencyCode),
	)
	s.publishCompleted(ctx, txn)
	return &txn, nil
}

// Transfer moves amount from one account to another, converting through the
// stored exchange rate when the currencies differ. The balance check uses the
// source-currency amount against the source account.
func (s *ledgerService) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}
	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{fromAccountID, toAccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	fromAccount, ok := accounts[fromAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, fromAccountID)
	}
	toAccount, ok := accounts[toAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, toAccountID)
	}

	rate, err := s.rateSvc.GetRate(ctx, fromAccount.CurrencyCode, toAccount.CurrencyCode)
	if err != nil {
		return nil, err
	}
	convertedAmount := amount.Mul(rate)

	if fromAccount.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, fromAccount.Balance.String(), amount.String())
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		FromAccountID:   fromAccount.AccountID,
		ToAccountID:     toAccount.AccountID,
		Amount:          amount,
		CurrencyCode:    fromAccount.CurrencyCode,
		ConvertedAmount: convertedAmount,
		ExchangeRate:    rate,
		Kind:            domain.Transfer,
		Entries: []domain.Entry{
			{AccountID: fromAccount.AccountID, Amount: amount.Neg(), CurrencyCode: fromAccount.CurrencyCode},
			{AccountID: toAccount.AccountID, Amount: convertedAmount, CurrencyCode: toAccount.CurrencyCode},
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.apply(ctx, txn); err != nil {
		return nil, err
	}

	logger.Info("Transfer posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from_account_id", fromAccount.AccountID),
		slog.String("to_account_id", toAccount.AccountID),
		slog.String("amount", amount.String()),
		slog.String("converted_amount", convertedAmount.String()),
	)
	s.publishCompleted(ctx, txn)
	return &txn, nil
}

// GetBalance returns the account's committed balance and currency.
func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return account, nil
}

// GetProfile returns a user together with all of their accounts.
func (s *ledgerService) GetProfile(ctx context.Context, userID string) (*domain.User, []domain.Account, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, userID)
		}
		return nil, nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	return user, accounts, nil
}

// ListAccountTransactions returns the account's transaction history, newest
// first. Only the account owner may read it.
func (s *ledgerService) ListAccountTransactions(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if account.UserID != userID {
		return nil, nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrForbidden, accountID)
	}

	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	transactions, token, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	return transactions, token, nil
}

// apply runs the Apply phase: it validates the entries one last time and hands
// the transaction to the repository's atomic unit. Store failures that are not
// business outcomes surface as ErrPersistenceFailure; in every failure case no
// partial mutation is visible.
func (s *ledgerService) apply(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	err := s.ledgerRepo.PostTransaction(ctx, txn)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrInsufficientFunds) {
		return err
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %v", apperrors.ErrAccountNotFound, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
}

// publishCompleted emits a TransactionCompleted event after commit. Failures
// are logged and ignored; the ledger record is already durable.
func (s *ledgerService) publishCompleted(ctx context.Context, txn domain.Transaction) {
	if s.publisher == nil {
		return
	}
	event := events.TransactionCompleted{
		TransactionID: txn.TransactionID,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		Kind:          string(txn.Kind),
		OccurredAt:    txn.CreatedAt,
	}
	if err := s.publisher.Publish(events.TopicTransactionCompleted, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish transaction event",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()),
		)
	}
}
