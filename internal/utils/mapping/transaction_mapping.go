package mapping

import (
	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/fintrax/ledger-api/internal/models"
)

// ToModelTransaction converts a domain transaction header to its storage representation.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		FromAccountID:   d.FromAccountID,
		ToAccountID:     d.ToAccountID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		ConvertedAmount: d.ConvertedAmount,
		ExchangeRate:    d.ExchangeRate,
		Kind:            models.TransactionKind(d.Kind),
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainTransaction converts a storage transaction header and its entries
// back to the domain representation.
func ToDomainTransaction(m models.Transaction, entries []models.Entry) domain.Transaction {
	domainEntries := make([]domain.Entry, len(entries))
	for i, e := range entries {
		domainEntries[i] = domain.Entry{
			AccountID:    e.AccountID,
			Amount:       e.Amount,
			CurrencyCode: e.CurrencyCode,
		}
	}
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		FromAccountID:   m.FromAccountID,
		ToAccountID:     m.ToAccountID,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		ConvertedAmount: m.ConvertedAmount,
		ExchangeRate:    m.ExchangeRate,
		Kind:            domain.TransactionKind(m.Kind),
		Entries:         domainEntries,
		CreatedAt:       m.CreatedAt,
	}
}
