package seed

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
	"github.com/fintrax/ledger-api/internal/utils"
	"github.com/fintrax/ledger-api/pkg/config"
)

// defaultRates are the bootstrap conversion multipliers for the supported
// currency pairs. A pair already present in the store is left untouched.
var defaultRates = map[[2]string]string{
	{"USD", "NGN"}: "1400",
	{"EUR", "NGN"}: "1500",
	{"USD", "EUR"}: "0.91",
	{"EUR", "USD"}: "1.1",
}

// Run seeds the ledger's bootstrap data: one funded reserve account per
// supported currency, the default exchange rates, and an admin user when
// ADMIN_PASSWORD is configured. Every step is idempotent so Run is safe to
// call on each start.
func Run(ctx context.Context, cfg *config.Config, repos *portsrepo.RepositoryProvider, logger *slog.Logger) error {
	if err := seedReserves(ctx, cfg, repos.AccountRepo, logger); err != nil {
		return err
	}
	if err := seedExchangeRates(ctx, cfg, repos.ExchangeRateRepo, logger); err != nil {
		return err
	}
	if err := seedAdminUser(ctx, cfg, repos.UserRepo, logger); err != nil {
		return err
	}
	return nil
}

func seedReserves(ctx context.Context, cfg *config.Config, accountRepo portsrepo.AccountRepository, logger *slog.Logger) error {
	now := time.Now().UTC()
	for _, currencyCode := range cfg.SupportedCurrencies {
		_, err := accountRepo.FindReserveAccount(ctx, currencyCode)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrReserveNotFound) && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check reserve for %s: %w", currencyCode, err)
		}

		reserve := domain.Account{
			AccountID:    uuid.NewString(),
			Balance:      cfg.ReserveSeedBalance,
			CurrencyCode: currencyCode,
			Kind:         domain.KindReserve,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := accountRepo.SaveAccount(ctx, reserve); err != nil {
			// A concurrent starter may have created it between check and save.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed reserve for %s: %w", currencyCode, err)
		}
		logger.Info("Seeded reserve account",
			slog.String("account_id", reserve.AccountID),
			slog.String("currency", currencyCode),
			slog.String("balance", reserve.Balance.String()),
		)
	}
	return nil
}

func seedExchangeRates(ctx context.Context, cfg *config.Config, rateRepo portsrepo.ExchangeRateRepository, logger *slog.Logger) error {
	supported := make(map[string]bool, len(cfg.SupportedCurrencies))
	for _, code := range cfg.SupportedCurrencies {
		supported[code] = true
	}

	now := time.Now().UTC()
	for pair, rateStr := range defaultRates {
		base, target := pair[0], pair[1]
		if !supported[base] || !supported[target] {
			continue
		}

		_, err := rateRepo.FindExchangeRate(ctx, base, target)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check exchange rate %s/%s: %w", base, target, err)
		}

		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return fmt.Errorf("invalid seed rate for %s/%s: %w", base, target, err)
		}
		if err := rateRepo.SaveExchangeRate(ctx, domain.ExchangeRate{
			ExchangeRateID:     uuid.NewString(),
			BaseCurrencyCode:   base,
			TargetCurrencyCode: target,
			Rate:               rate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}); err != nil {
			return fmt.Errorf("failed to seed exchange rate %s/%s: %w", base, target, err)
		}
		logger.Info("Seeded exchange rate",
			slog.String("base", base),
			slog.String("target", target),
			slog.String("rate", rate.String()),
		)
	}
	return nil
}

func seedAdminUser(ctx context.Context, cfg *config.Config, userRepo portsrepo.UserRepository, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		logger.Info("ADMIN_PASSWORD not set, skipping admin user seed")
		return nil
	}

	email := strings.ToLower(cfg.AdminEmail)
	_, err := userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := domain.User{
		UserID:       uuid.NewString(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       admin.UserID,
		Balance:      decimal.Zero,
		CurrencyCode: cfg.SupportedCurrencies[0],
		Kind:         domain.KindUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := userRepo.SaveUserWithAccount(ctx, admin, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info("Seeded admin user", slog.String("user_id", admin.UserID), slog.String("email", email))
	return nil
}
