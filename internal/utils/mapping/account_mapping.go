package mapping

import (
	"github.com/fintrax/ledger-api/internal/core/domain"
	"github.com/fintrax/ledger-api/internal/models"
)

// ToModelAccount converts a domain account to its storage representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		UserID:       d.UserID,
		Balance:      d.Balance,
		CurrencyCode: d.CurrencyCode,
		Kind:         models.AccountKind(d.Kind),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainAccount converts a storage account back to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		UserID:       m.UserID,
		Balance:      m.Balance,
		CurrencyCode: m.CurrencyCode,
		Kind:         domain.AccountKind(m.Kind),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
