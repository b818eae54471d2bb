package services

import (
	"context"

	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/fintrax/ledger-api/internal/dto"
)

// UserSvcFacade handles registration and credential checks.
type UserSvcFacade interface {
	// Register creates a new user and their default account atomically.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *domain.Account, error)

	// Authenticate verifies email/password credentials and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
