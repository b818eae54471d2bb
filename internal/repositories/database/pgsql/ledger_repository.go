package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
	"github.com/fintrax/ledger-api/internal/models"
	"github.com/fintrax/ledger-api/internal/utils/mapping"
	"github.com/fintrax/ledger-api/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxLedgerRepository creates a new repository for the transaction log.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, from_account_id, to_account_id, amount, currency_code, converted_amount, exchange_rate, kind, created_at`

// PostTransaction applies the transaction's balance changes and appends the
// transaction record with its entries as one atomic unit. Account rows are
// locked for the duration; balance updates are conditional on staying
// non-negative. Any failure rolls the whole unit back.
func (r *PgxLedgerRepository) PostTransaction(ctx context.Context, txn domain.Transaction) error {
	balanceChanges := txn.BalanceChanges()
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}

	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		// Lock first; also confirms every account still exists.
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return err
		}

		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, txn.CreatedAt); err != nil {
			return err
		}

		modelTxn := mapping.ToModelTransaction(txn)
		txnQuery := `
			INSERT INTO transactions (transaction_id, from_account_id, to_account_id, amount, currency_code, converted_amount, exchange_rate, kind, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		_, err := tx.Exec(ctx, txnQuery,
			modelTxn.TransactionID,
			modelTxn.FromAccountID,
			modelTxn.ToAccountID,
			modelTxn.Amount,
			modelTxn.CurrencyCode,
			modelTxn.ConvertedAmount,
			modelTxn.ExchangeRate,
			modelTxn.Kind,
			modelTxn.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
		}

		batch := &pgx.Batch{}
		entryQuery := `
			INSERT INTO entries (entry_id, transaction_id, account_id, amount, currency_code)
			VALUES ($1, $2, $3, $4, $5);
		`
		for i, entry := range txn.Entries {
			batch.Queue(entryQuery, entryID(txn.TransactionID, i), txn.TransactionID, entry.AccountID, entry.Amount, entry.CurrencyCode)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert entries for transaction %s: %w", modelTxn.TransactionID, err)
		}
		return nil
	})
}

// FindTransactionByID retrieves a transaction with its entries.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	var modelTxn models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&modelTxn.TransactionID,
		&modelTxn.FromAccountID,
		&modelTxn.ToAccountID,
		&modelTxn.Amount,
		&modelTxn.CurrencyCode,
		&modelTxn.ConvertedAmount,
		&modelTxn.ExchangeRate,
		&modelTxn.Kind,
		&modelTxn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	entriesByTxn, err := r.findEntriesByTransactionIDs(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}

	txn := mapping.ToDomainTransaction(modelTxn, entriesByTxn[transactionID])
	return &txn, nil
}

// ListTransactions retrieves a token-paginated page of transactions, newest first.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, "", limit, nextToken)
}

// ListTransactionsByAccountID retrieves a token-paginated page of transactions
// touching the given account, newest first.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if accountID == "" {
		return nil, nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	return r.listTransactions(ctx, accountID, limit, nextToken)
}

// listTransactions is the shared listing query. When accountID is non-empty
// the result is restricted to transactions with an entry against that account.
func (r *PgxLedgerRepository) listTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := []any{}
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	where := []string{}

	if accountID != "" {
		args = append(args, accountID)
		where = append(where, fmt.Sprintf(`transaction_id IN (SELECT transaction_id FROM entries WHERE account_id = $%d)`, len(args)))
	}

	if nextToken != nil {
		createdAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, createdAt, lastID)
		where = append(where, fmt.Sprintf(`(created_at, transaction_id) < ($%d, $%d)`, len(args)-1, len(args)))
	}

	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		var modelTxn models.Transaction
		if err := rows.Scan(
			&modelTxn.TransactionID,
			&modelTxn.FromAccountID,
			&modelTxn.ToAccountID,
			&modelTxn.Amount,
			&modelTxn.CurrencyCode,
			&modelTxn.ConvertedAmount,
			&modelTxn.ExchangeRate,
			&modelTxn.Kind,
			&modelTxn.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, modelTxn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var newNextToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}

	if len(modelTxns) == 0 {
		return []domain.Transaction{}, nil, nil
	}

	txnIDs := make([]string, len(modelTxns))
	for i, m := range modelTxns {
		txnIDs[i] = m.TransactionID
	}
	entriesByTxn, err := r.findEntriesByTransactionIDs(ctx, txnIDs)
	if err != nil {
		return nil, nil, err
	}

	transactions := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		transactions[i] = mapping.ToDomainTransaction(m, entriesByTxn[m.TransactionID])
	}
	return transactions, newNextToken, nil
}

// entryID derives the stored identifier for one transaction leg. The index is
// zero padded so lexicographic order on entry_id matches journal order when
// entries are re-read with ORDER BY entry_id.
func entryID(transactionID string, index int) string {
	return fmt.Sprintf("%s-%04d", transactionID, index)
}

// findEntriesByTransactionIDs loads entries for a set of transactions,
// grouped by transaction ID and ordered as written.
func (r *PgxLedgerRepository) findEntriesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]models.Entry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, amount, currency_code
		FROM entries
		WHERE transaction_id = ANY($1)
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entriesByTxn := make(map[string][]models.Entry)
	for rows.Next() {
		var entry models.Entry
		if err := rows.Scan(&entry.EntryID, &entry.TransactionID, &entry.AccountID, &entry.Amount, &entry.CurrencyCode); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entriesByTxn[entry.TransactionID] = append(entriesByTxn[entry.TransactionID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entriesByTxn, nil
}
