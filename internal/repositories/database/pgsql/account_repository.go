package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
	"github.com/fintrax/ledger-api/internal/models"
	"github.com/fintrax/ledger-api/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, balance, currency_code, kind, created_at, last_updated_at`

// scanAccount scans one account row. user_id is NULL for reserve accounts.
func scanAccount(row pgx.Row) (models.Account, error) {
	var modelAcc models.Account
	var userID sql.NullString
	err := row.Scan(
		&modelAcc.AccountID,
		&userID,
		&modelAcc.Balance,
		&modelAcc.CurrencyCode,
		&modelAcc.Kind,
		&modelAcc.CreatedAt,
		&modelAcc.LastUpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}
	if userID.Valid {
		modelAcc.UserID = userID.String
	}
	return modelAcc, nil
}

// SaveAccount inserts a new account. Accounts are never updated or deleted
// outside the ledger's balance mutation path.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	var userID sql.NullString
	if modelAcc.UserID != "" {
		userID = sql.NullString{String: modelAcc.UserID, Valid: true}
	}

	query := `
		INSERT INTO accounts (account_id, user_id, balance, currency_code, kind, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		userID,
		modelAcc.Balance,
		modelAcc.CurrencyCode,
		modelAcc.Kind,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(modelAcc)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are
// simply absent from the returned map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accountsMap[modelAcc.AccountID] = mapping.ToDomainAccount(modelAcc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsMap, nil
}

// FindReserveAccount retrieves the reserve account for a currency. The
// (currency_code, kind) index makes this a single-row lookup.
func (r *PgxAccountRepository) FindReserveAccount(ctx context.Context, currencyCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE currency_code = $1 AND kind = $2;`

	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, currencyCode, models.KindReserve))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrReserveNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to find reserve account for %s: %w", currencyCode, err)
	}

	account := mapping.ToDomainAccount(modelAcc)
	return &account, nil
}

// ListAccountsByUser retrieves all accounts owned by a user.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(modelAcc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for user %s: %w", userID, err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of all accounts, oldest first.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, account_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(modelAcc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByIDsForUpdate retrieves accounts by IDs and locks their rows
// for update, in account_id order so two units touching the same accounts
// cannot deadlock on each other. Must be called within a transaction; returns
// ErrNotFound when any requested account is missing.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[modelAcc.AccountID] = mapping.ToDomainAccount(modelAcc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, id := range accountIDs {
		if _, found := accountsMap[id]; !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accountsMap, nil
}

// ApplyBalanceChangesInTx applies signed balance deltas within the given
// transaction. Each update is conditional on the resulting balance staying
// non-negative, evaluated server-side; a zero-row update on a locked, known
// account means the condition failed and aborts the unit with
// ErrInsufficientFunds.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_id = $1 AND balance + $2 >= 0;
	`

	// Rows are already locked by FindAccountsByIDsForUpdate; sorted order keeps
	// batch results aligned with accountIDs for error reporting.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			accountIDs = append(accountIDs, accountID)
		}
	}
	sort.Strings(accountIDs)
	if len(accountIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, accountID := range accountIDs {
		batch.Queue(query, accountID, balanceChanges[accountID], now)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountIDs[i])
			}
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", closeErr)
	}
	return batchErr
}
