package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places money columns store.
const MoneyScale = 2

// ValidMoney reports whether amount fits a money column without rounding.
func ValidMoney(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

// OutstandingBalance is proposal - (advance + paid + loan).
func OutstandingBalance(p Project) decimal.Decimal {
	return p.ProposalAmount.Sub(p.AdvancePayment.Add(p.PaidAmount).Add(p.LoanAmount))
}

// ValidatePayment checks a payment against the project's current balance
// without mutating anything.
func ValidatePayment(p Project, amount decimal.Decimal, mode PaymentMode) error {
	if !amount.IsPositive() || !ValidMoney(amount) {
		return ErrInvalidAmount
	}
	if !mode.Valid() {
		return ErrInvalidPaymentMode
	}
	if amount.GreaterThan(OutstandingBalance(p)) {
		return ErrExceedsBalance
	}
	return nil
}

// ValidateFigures checks the contract figures of a new or edited project.
func ValidateFigures(proposal, advance, loan, paid decimal.Decimal) error {
	if proposal.IsNegative() || advance.IsNegative() || loan.IsNegative() {
		return Invalid("amounts cannot be negative")
	}
	if !ValidMoney(proposal) || !ValidMoney(advance) || !ValidMoney(loan) {
		return Invalid("amounts cannot have more than two decimal places")
	}
	if advance.Add(loan).Add(paid).GreaterThan(proposal) {
		return ErrExceedsBalance
	}
	return nil
}

// DecrementFloor subtracts amount from paid, never going below zero.
func DecrementFloor(paid, amount decimal.Decimal) decimal.Decimal {
	out := paid.Sub(amount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
