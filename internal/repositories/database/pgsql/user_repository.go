package pgsql

import (
	"context"
	"database/sql"
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

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, role, created_at, last_updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var modelUser models.User
	err := row.Scan(
		&modelUser.UserID,
		&modelUser.Name,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.Role,
		&modelUser.CreatedAt,
		&modelUser.LastUpdatedAt,
	)
	return modelUser, err
}

// FindUserByID retrieves a user by its unique identifier.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	modelUser, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	user := mapping.ToDomainUser(modelUser)
	return &user, nil
}

// FindUserByEmail retrieves a user by email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	modelUser, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	user := mapping.ToDomainUser(modelUser)
	return &user, nil
}

// ListUsers retrieves a page of users ordered by creation time, newest first.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, user_id DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		modelUser, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, mapping.ToDomainUser(modelUser))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// SaveUserWithAccount persists a new user and their default account in one
// database transaction, so a user never exists without an account.
func (r *PgxUserRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error {
	modelUser := mapping.ToModelUser(user)
	modelAcc := mapping.ToModelAccount(account)

	err := r.RunInTx(ctx, func(tx pgx.Tx) error {
		userQuery := `
			INSERT INTO users (user_id, name, email, password_hash, role, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		if _, err := tx.Exec(ctx, userQuery,
			modelUser.UserID,
			modelUser.Name,
			modelUser.Email,
			modelUser.PasswordHash,
			modelUser.Role,
			modelUser.CreatedAt,
			modelUser.LastUpdatedAt,
		); err != nil {
			return err
		}

		accountQuery := `
			INSERT INTO accounts (account_id, user_id, balance, currency_code, kind, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		_, err := tx.Exec(ctx, accountQuery,
			modelAcc.AccountID,
			sql.NullString{String: modelAcc.UserID, Valid: modelAcc.UserID != ""},
			modelAcc.Balance,
			modelAcc.CurrencyCode,
			modelAcc.Kind,
			modelAcc.CreatedAt,
			modelAcc.LastUpdatedAt,
		)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user with email already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user %s: %w", modelUser.UserID, err)
	}
	return nil
}
