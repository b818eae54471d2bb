package services

// ServiceContainer bundles all service facades for wiring at process start.
type ServiceContainer struct {
	Ledger       LedgerSvcFacade
	ExchangeRate ExchangeRateSvcFacade
	User         UserSvcFacade
	Admin        AdminSvcFacade
}
