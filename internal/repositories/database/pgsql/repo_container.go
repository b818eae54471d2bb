package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)

	return &portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		LedgerRepo:       newPgxLedgerRepository(pool, accountRepo),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
	}
}
