package repositories

// RepositoryProvider bundles all repository implementations for wiring at
// process start.
type RepositoryProvider struct {
	AccountRepo      AccountRepository
	LedgerRepo       LedgerRepository
	ExchangeRateRepo ExchangeRateRepository
	UserRepo         UserRepository
}
