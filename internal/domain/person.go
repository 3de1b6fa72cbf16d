package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/pkg/money"
)

// IncomeGrowthRate is the fixed annual raise applied to every member.
var IncomeGrowthRate = decimal.New(3, -2)

// Person is one earning member of a household.
type Person struct {
	Name    string          `yaml:"name" json:"name"`
	Income  decimal.Decimal `yaml:"income" json:"income"`
	TaxRate decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	// Savings is carried for reporting only; no calculation reads it yet.
	Savings decimal.Decimal `yaml:"savings" json:"savings"`
}

// NewPerson creates a person with income and savings rounded to cents and
// the flat tax rate rounded to four places.
func NewPerson(name string, income, taxRate, savings decimal.Decimal) *Person {
	return &Person{
		Name:    name,
		Income:  money.Cents(income),
		TaxRate: money.Rate(taxRate),
		Savings: money.Cents(savings),
	}
}

// UpdateIncome applies one period of fixed income growth.
func (p *Person) UpdateIncome() {
	p.Income = money.Grow(p.Income, IncomeGrowthRate)
}

// UpdateIncomeSpecific replaces the income with an explicit amount, as on a
// job change. A negative amount is rejected and leaves the income untouched.
func (p *Person) UpdateIncomeSpecific(newIncome decimal.Decimal) error {
	if newIncome.IsNegative() {
		return fmt.Errorf("%w: income cannot be negative (%s for %s)", ErrInvalidValue, newIncome, p.Name)
	}
	p.Income = money.Cents(newIncome)
	return nil
}

// CalculateTaxes returns the flat tax owed on the current income.
func (p *Person) CalculateTaxes() decimal.Decimal {
	return money.Cents(p.Income.Mul(p.TaxRate))
}
