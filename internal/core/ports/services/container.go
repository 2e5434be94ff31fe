package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Ledger      LedgerSvcFacade
	Account     AccountSvcFacade
	Auth        AuthSvcFacade
	Maintenance MaintenanceSvcFacade
}
