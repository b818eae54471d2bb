package dto

import (
	"time"

	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest is the payload for crediting a user account from the reserve.
type DepositRequest struct {
	AccountID    string          `json:"accountId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currency" binding:"required,len=3"`
}

// WithdrawRequest is the payload for debiting a user account into the reserve.
type WithdrawRequest struct {
	AccountID    string          `json:"accountId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currency" binding:"required,len=3"`
}

// TransferRequest is the payload for moving funds between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId" binding:"required"`
	ToAccountID   string          `json:"toAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// EntryResponse is one signed leg of a transaction.
type EntryResponse struct {
	AccountID    string          `json:"accountId"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency"`
}

// TransactionResponse is the transport shape of a ledger transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionId"`
	FromAccountID   string          `json:"fromAccountId"`
	ToAccountID     string          `json:"toAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	Kind            string          `json:"kind"`
	Entries         []EntryResponse `json:"entries"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// BalanceResponse reports an account's committed balance.
type BalanceResponse struct {
	AccountID    string          `json:"accountId"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currency"`
}

// ToTransactionResponse maps a domain transaction to its transport shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = EntryResponse{
			AccountID:    e.AccountID,
			Amount:       e.Amount,
			CurrencyCode: e.CurrencyCode,
		}
	}
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		FromAccountID:   t.FromAccountID,
		ToAccountID:     t.ToAccountID,
		Amount:          t.Amount,
		CurrencyCode:    t.CurrencyCode,
		ConvertedAmount: t.ConvertedAmount,
		ExchangeRate:    t.ExchangeRate,
		Kind:            string(t.Kind),
		Entries:         entries,
		CreatedAt:       t.CreatedAt,
	}
}

// ToBalanceResponse maps an account to a balance report.
func ToBalanceResponse(a *domain.Account) BalanceResponse {
	return BalanceResponse{
		AccountID:    a.AccountID,
		Balance:      a.Balance,
		CurrencyCode: a.CurrencyCode,
	}
}
