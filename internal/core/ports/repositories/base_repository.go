package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for scoping work to one database
// transaction. All exclusion between concurrent ledger operations is delegated
// to this atomic-unit mechanism; no in-process locks are shared across
// operations.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back an already-committed
	// transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
