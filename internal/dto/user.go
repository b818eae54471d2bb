package dto

import (
	"time"

	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterRequest is the payload for creating a new user and their default account.
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	CurrencyCode string `json:"currency" binding:"omitempty,len=3"`
}

// LoginRequest is the payload for obtaining an access token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse is the transport shape of a user.
type UserResponse struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountSummary is the transport shape of an account in profile responses.
type AccountSummary struct {
	AccountID    string          `json:"accountId"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currency"`
	Kind         string          `json:"kind"`
}

// ProfileResponse aggregates a user with their accounts.
type ProfileResponse struct {
	User     UserResponse     `json:"user"`
	Accounts []AccountSummary `json:"accounts"`
}

// RegisterResponse is returned after successful registration.
type RegisterResponse struct {
	User    UserResponse   `json:"user"`
	Account AccountSummary `json:"account"`
	Token   string         `json:"token"`
}

// ToUserResponse maps a domain user to its transport shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ToAccountSummary maps a domain account to its transport shape.
func ToAccountSummary(a domain.Account) AccountSummary {
	return AccountSummary{
		AccountID:    a.AccountID,
		Balance:      a.Balance,
		CurrencyCode: a.CurrencyCode,
		Kind:         string(a.Kind),
	}
}

// ToProfileResponse maps a user and their accounts to a profile.
func ToProfileResponse(u *domain.User, accounts []domain.Account) ProfileResponse {
	summaries := make([]AccountSummary, len(accounts))
	for i, a := range accounts {
		summaries[i] = ToAccountSummary(a)
	}
	return ProfileResponse{
		User:     ToUserResponse(u),
		Accounts: summaries,
	}
}
