package constants

import (
	"strings"

	roles "axiso-backend/internal/pkg/constants"
)

// Rule grants a permission. A principal matches when its role is in Roles or
// its email is in Emails, and its email is not in Except.
type Rule struct {
	Roles  []string
	Emails []string
	Except []string
	// AllowAll grants everyone not listed in Except.
	AllowAll bool
}

// PermissionRules is the whole authorization policy.
var PermissionRules = map[string]Rule{
	ViewReceipts:   {Roles: []string{roles.Admin}, Emails: []string{OperationsEmail, FinanceEmail}},
	AddPayment:     {Roles: []string{roles.Admin}, Except: []string{OperationsEmail}},
	EditCustomer:   {Roles: []string{roles.Admin}, Emails: []string{OperationsEmail}},
	EditLoanAmount: {Emails: []string{SuperAdminEmail}},
	DeletePayment:  {Emails: []string{SuperAdminEmail}},
	ViewFinance:    {Emails: []string{FinanceEmail}},
	ViewRevenue:    {AllowAll: true, Except: []string{FinanceEmail, OperationsEmail}},
	ManageProjects: {Roles: []string{roles.Admin}},
}

// Allowed reports whether a principal with the given email and role holds permission.
// Unknown permissions are denied.
func Allowed(permission, email, role string) bool {
	rule, ok := PermissionRules[permission]
	if !ok {
		return false
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if contains(rule.Except, email) {
		return false
	}
	if rule.AllowAll {
		return true
	}
	return contains(rule.Roles, role) || contains(rule.Emails, email)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
