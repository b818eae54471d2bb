package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
	"github.com/fintrax/ledger-api/internal/models"
	"github.com/fintrax/ledger-api/internal/utils/mapping"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, base_currency_code, target_currency_code, rate, created_at, last_updated_at`

// FindExchangeRate retrieves the stored rate for an ordered currency pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE base_currency_code = $1 AND target_currency_code = $2;`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, baseCurrencyCode, targetCurrencyCode).Scan(
		&modelRate.ExchangeRateID,
		&modelRate.BaseCurrencyCode,
		&modelRate.TargetCurrencyCode,
		&modelRate.Rate,
		&modelRate.CreatedAt,
		&modelRate.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s/%s: %w", baseCurrencyCode, targetCurrencyCode, err)
	}

	rate := mapping.ToDomainExchangeRate(modelRate)
	return &rate, nil
}

// SaveExchangeRate upserts the rate for an ordered currency pair.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, base_currency_code, target_currency_code, rate, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (base_currency_code, target_currency_code)
		DO UPDATE SET rate = EXCLUDED.rate, last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.BaseCurrencyCode,
		modelRate.TargetCurrencyCode,
		modelRate.Rate,
		modelRate.CreatedAt,
		modelRate.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: exchange rate %s/%s", apperrors.ErrDuplicate, modelRate.BaseCurrencyCode, modelRate.TargetCurrencyCode)
		}
		return fmt.Errorf("failed to save exchange rate %s/%s: %w", modelRate.BaseCurrencyCode, modelRate.TargetCurrencyCode, err)
	}
	return nil
}
