package constants

const (
	ViewReceipts   = "view_receipts"
	AddPayment     = "add_payment"
	EditCustomer   = "edit_customer"
	EditLoanAmount = "edit_loan_amount"
	DeletePayment  = "delete_payment"
	ViewFinance    = "view_finance"
	ViewRevenue    = "view_revenue"
	ManageProjects = "manage_projects"
)

// Accounts with fixed overrides layered on top of role.
const (
	SuperAdminEmail = "admin@axisogreen.in"
	OperationsEmail = "contact@axisogreen.in"
	FinanceEmail    = "dhanush@axisogreen.in"
)
