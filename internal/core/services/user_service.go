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
	"github.com/fintrax/ledger-api/internal/dto"
	"github.com/fintrax/ledger-api/internal/middleware"
	"github.com/fintrax/ledger-api/internal/utils"
)

// ErrInvalidCredentials is returned when login credentials do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

const defaultCurrencyCode = "USD"

// userService handles registration and credential checks.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new user together with their default account. Both rows
// are written in one database transaction so a user never exists without an
// account.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	currencyCode := strings.ToUpper(req.CurrencyCode)
	if currencyCode == "" {
		currencyCode = defaultCurrencyCode
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: user with email %s", apperrors.ErrDuplicate, email)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       user.UserID,
		Balance:      decimal.Zero,
		CurrencyCode: currencyCode,
		Kind:         domain.KindUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUserWithAccount(ctx, user, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, fmt.Errorf("%w: user with email %s", apperrors.ErrDuplicate, email)
		}
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("User registered",
		slog.String("user_id", user.UserID),
		slog.String("account_id", account.AccountID),
		slog.String("currency", currencyCode),
	)
	return &user, &account, nil
}

// Authenticate verifies email/password credentials and returns the user.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same failure as a wrong password, to avoid leaking which emails exist.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}
