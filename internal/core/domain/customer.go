package domain

import "github.com/shopspring/decimal"

// Role tags what ledger operations a caller may invoke. The original system
// modelled this as user-type inheritance; a tagged role is all the behaviour
// actually varies on.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleAdministrator Role = "administrator"
)

// Customer is a bank customer profile. LoanDebt is the running total of
// undischarged loan principal and only ever increases via loan disbursement.
type Customer struct {
	Username    string          `json:"username"`
	Name        string          `json:"name"`
	Role        Role            `json:"role"`
	CreditScore int             `json:"creditScore"`
	LoanDebt    decimal.Decimal `json:"loanDebt"`
}

// CustomerView composes a customer profile with the accounts it owns. It is
// a point-in-time read model: callers must not trust it across operation
// boundaries without reloading from the store.
type CustomerView struct {
	Customer
	Accounts []Account `json:"accounts"`
}
