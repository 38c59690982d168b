package repositories

// RepositoryProvider bundles the repository facades handed to service
// construction.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	MissionRepo      MissionRepositoryFacade
	ReportRepo       ReportRepositoryFacade
	ReportAdminRepo  ReportAdminRepositoryFacade
	EntryRepo        EntryRepositoryFacade
	LinkRepo         LinkRepositoryFacade
	LedgerCommitRepo LedgerCommitRepositoryFacade
	TxManager        TxManager
}
