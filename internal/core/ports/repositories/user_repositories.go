package repositories

import (
	"context"

	"github.com/fintrax/ledger-api/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUserWithAccount persists a new user together with their default
	// account in one database transaction.
	SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error
}

// UserRepository combines the user interfaces.
type UserRepository interface {
	UserReader
	UserWriter
}
