package services

import (
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
)

// ServicesContainer bundles all service facades for wiring into handlers.
type ServicesContainer struct {
	Transaction portssvc.TransactionSvcFacade
	Account     portssvc.AccountSvcFacade
	Loan        portssvc.LoanSvcFacade
	Customer    portssvc.CustomerSvcFacade
	Reporting   portssvc.ReportingSvcFacade
}

// NewServicesContainer constructs every service from the repository provider.
func NewServicesContainer(repos portsrepo.RepositoryProvider) *ServicesContainer {
	return &ServicesContainer{
		Transaction: NewTransactionEngine(repos.LedgerRepo),
		Account:     NewAccountService(repos.LedgerRepo),
		Loan:        NewLoanAuthorizer(repos.LedgerRepo, repos.CustomerRepo),
		Customer:    NewCustomerService(repos.LedgerRepo, repos.CustomerRepo),
		Reporting:   NewReportingService(repos.ReportingRepo, repos.CustomerRepo),
	}
}
