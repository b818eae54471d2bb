package services

import (
	portsrepo "github.com/fintrax/ledger-api/internal/core/ports/repositories"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
)

// NewServiceContainer wires all services onto the repository provider.
// publisher may be nil when no event broker is configured.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.LedgerRepo, repos.UserRepo, container.ExchangeRate, publisher)
	container.Admin = NewAdminService(repos.UserRepo, repos.AccountRepo, repos.LedgerRepo)

	return container
}
