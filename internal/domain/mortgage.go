package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/pkg/money"
)

// DefaultMortgageTermYears is the term used for house purchases.
const DefaultMortgageTermYears = 30

// Mortgage is a fixed-payment loan amortized once per period.
type Mortgage struct {
	Principal        decimal.Decimal `json:"principal"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TermYears        int             `json:"term_years"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	// AnnualPayment is fixed at construction and never re-derived.
	AnnualPayment decimal.Decimal `json:"annual_payment"`
}

// NewMortgage builds a mortgage and computes its fixed annual payment.
func NewMortgage(principal, interestRate decimal.Decimal, termYears int) (*Mortgage, error) {
	if termYears < 1 {
		return nil, fmt.Errorf("%w: mortgage term must be at least one year, got %d", ErrInvalidValue, termYears)
	}
	if principal.IsNegative() {
		return nil, fmt.Errorf("%w: mortgage principal cannot be negative", ErrInvalidValue)
	}
	if interestRate.IsNegative() {
		return nil, fmt.Errorf("%w: mortgage interest rate cannot be negative", ErrInvalidValue)
	}

	m := &Mortgage{
		Principal:        money.Cents(principal),
		InterestRate:     money.Rate(interestRate),
		TermYears:        termYears,
		RemainingBalance: money.Cents(principal),
	}
	m.AnnualPayment = m.calculateAnnualPayment()
	return m, nil
}

// calculateAnnualPayment uses the standard amortization formula
// P·r·(1+r)^n / ((1+r)^n − 1), or straight-line P/n for a zero rate.
func (m *Mortgage) calculateAnnualPayment() decimal.Decimal {
	n := decimal.NewFromInt(int64(m.TermYears))
	if m.InterestRate.IsZero() {
		return money.Cents(m.Principal.Div(n))
	}
	growth := money.One.Add(m.InterestRate).Pow(n)
	payment := m.Principal.Mul(m.InterestRate.Mul(growth)).Div(growth.Sub(money.One))
	return money.Cents(payment)
}

// MakePayment applies one annual payment and returns the principal portion.
// Each intermediate amount is rounded to cents on its own. The principal
// portion never exceeds the remaining balance, so the balance stays >= 0.
func (m *Mortgage) MakePayment() decimal.Decimal {
	if !m.IsActive() {
		return money.Zero
	}
	interest := money.Cents(m.RemainingBalance.Mul(m.InterestRate))
	principal := money.Cents(m.AnnualPayment.Sub(interest))
	if principal.IsNegative() {
		principal = money.Zero
	}
	if principal.GreaterThan(m.RemainingBalance) {
		principal = m.RemainingBalance
	}
	m.RemainingBalance = money.Cents(m.RemainingBalance.Sub(principal))
	return principal
}

// IsActive reports whether any balance remains.
func (m *Mortgage) IsActive() bool {
	return m.RemainingBalance.IsPositive()
}
