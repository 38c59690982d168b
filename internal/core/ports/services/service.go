package services

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	User    UserSvcFacade
	Company CompanySvcFacade
	Mission MissionSvcFacade
	Report  ReportSvcFacade
	Entry   EntrySvcFacade
	Ledger  LedgerSvcFacade
	Export  ExportSvcFacade
}
