package domain

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/pkg/money"
)

// ChildLivingCostIncrease is added to living costs for every new child.
var ChildLivingCostIncrease = decimal.New(500000, -2)

// Household aggregates its members and the costs they share.
type Household struct {
	// Members keeps configuration order; name lookups return the first match.
	Members      []*Person       `json:"members"`
	LivingCosts  decimal.Decimal `json:"living_costs"`
	HousingCosts decimal.Decimal `json:"housing_costs"`

	mortgages    []*Mortgage
	cashReserves decimal.Decimal
}

// NewHousehold creates a household with costs rounded to cents.
func NewHousehold(members []*Person, livingCosts, housingCosts decimal.Decimal) *Household {
	return &Household{
		Members:      members,
		LivingCosts:  money.Cents(livingCosts),
		HousingCosts: money.Cents(housingCosts),
		cashReserves: money.Zero,
	}
}

// AggregateIncome sums member incomes plus any pending cash reserves, and
// realizes those reserves: the bucket is empty once this returns. A second
// call with no windfall in between therefore returns only member income.
func (h *Household) AggregateIncome() decimal.Decimal {
	return money.Sum(h.memberIncome(), h.RealizeReserves())
}

func (h *Household) memberIncome() decimal.Decimal {
	total := money.Zero
	for _, m := range h.Members {
		total = total.Add(m.Income)
	}
	return money.Cents(total)
}

// PendingReserves returns the unrealized windfall bucket without clearing it.
func (h *Household) PendingReserves() decimal.Decimal {
	return h.cashReserves
}

// RealizeReserves returns the windfall bucket and resets it to zero.
func (h *Household) RealizeReserves() decimal.Decimal {
	reserves := h.cashReserves
	h.cashReserves = money.Zero
	return reserves
}

// AggregateTaxes sums every member's flat tax.
func (h *Household) AggregateTaxes() decimal.Decimal {
	total := money.Zero
	for _, m := range h.Members {
		total = total.Add(m.CalculateTaxes())
	}
	return money.Cents(total)
}

// TotalMandatoryExpenses is living plus housing costs.
func (h *Household) TotalMandatoryExpenses() decimal.Decimal {
	return money.Sum(h.LivingCosts, h.HousingCosts)
}

// ApplyInflation grows living and housing costs by rate, which is first
// rounded to four places.
func (h *Household) ApplyInflation(rate decimal.Decimal) {
	r := money.Rate(rate)
	h.LivingCosts = money.Grow(h.LivingCosts, r)
	h.HousingCosts = money.Grow(h.HousingCosts, r)
}

// AddMortgage appends a mortgage and folds its annual payment into housing
// costs once. Housing costs are not recomputed from the mortgage list later.
func (h *Household) AddMortgage(m *Mortgage) {
	h.mortgages = append(h.mortgages, m)
	h.HousingCosts = money.Sum(h.HousingCosts, m.AnnualPayment)
}

// Mortgages returns the mortgages in the order they were added.
func (h *Household) Mortgages() []*Mortgage {
	return append([]*Mortgage(nil), h.mortgages...)
}

// IncreaseLivingCosts adds amount to living costs.
func (h *Household) IncreaseLivingCosts(amount decimal.Decimal) {
	h.LivingCosts = money.Sum(h.LivingCosts, amount)
}

// AddWindfall parks amount in cash reserves until the next income aggregation.
func (h *Household) AddWindfall(amount decimal.Decimal) {
	h.cashReserves = money.Sum(h.cashReserves, amount)
}

// MemberByName returns the first member whose name matches exactly
// (case-sensitive).
func (h *Household) MemberByName(name string) (*Person, bool) {
	for _, m := range h.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
