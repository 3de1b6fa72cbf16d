package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHousehold() *Household {
	return NewHousehold([]*Person{
		NewPerson("Jason", dec("80000"), dec("0.25"), decimal.Zero),
		NewPerson("Linda", dec("60000"), dec("0.20"), decimal.Zero),
	}, dec("50000"), dec("20000"))
}

func TestHousehold_Aggregates(t *testing.T) {
	h := newTestHousehold()

	assert.Equal(t, "140000.00", h.AggregateIncome().StringFixed(2))
	assert.Equal(t, "32000.00", h.AggregateTaxes().StringFixed(2))
	assert.Equal(t, "70000.00", h.TotalMandatoryExpenses().StringFixed(2))
}

func TestHousehold_AggregateIncomeRealizesWindfall(t *testing.T) {
	h := newTestHousehold()
	h.AddWindfall(dec("10000.005"))
	assert.Equal(t, "10000.01", h.PendingReserves().StringFixed(2))
	assert.Equal(t, "10000.01", h.PendingReserves().StringFixed(2), "peek does not clear")

	assert.Equal(t, "150000.01", h.AggregateIncome().StringFixed(2))
	assert.True(t, h.PendingReserves().IsZero())

	// A second read without a new windfall returns only the base income.
	assert.Equal(t, "140000.00", h.AggregateIncome().StringFixed(2))
	assert.Equal(t, "140000.00", h.AggregateIncome().StringFixed(2))
	assert.True(t, h.PendingReserves().IsZero())
}

func TestHousehold_RealizeReserves(t *testing.T) {
	h := newTestHousehold()
	h.AddWindfall(dec("500"))
	h.AddWindfall(dec("250.50"))

	assert.Equal(t, "750.50", h.RealizeReserves().StringFixed(2))
	assert.True(t, h.RealizeReserves().IsZero())
	assert.Equal(t, "140000.00", h.AggregateIncome().StringFixed(2))
}

func TestHousehold_ApplyInflation(t *testing.T) {
	h := newTestHousehold()

	h.ApplyInflation(dec("0.02"))
	assert.Equal(t, "51000.00", h.LivingCosts.StringFixed(2))
	assert.Equal(t, "20400.00", h.HousingCosts.StringFixed(2))

	h.ApplyInflation(dec("0.02"))
	assert.Equal(t, "52020.00", h.LivingCosts.StringFixed(2))
	assert.Equal(t, "20808.00", h.HousingCosts.StringFixed(2))

	// The rate is rounded to four places first: 0.024996 -> 0.0250.
	h2 := NewHousehold(nil, dec("1000"), dec("1000"))
	h2.ApplyInflation(dec("0.024996"))
	assert.Equal(t, "1025.00", h2.LivingCosts.StringFixed(2))
}

func TestHousehold_AddMortgageRaisesHousingOnce(t *testing.T) {
	h := newTestHousehold()
	m, err := NewMortgage(dec("10000"), dec("0.05"), 1)
	require.NoError(t, err)

	h.AddMortgage(m)
	assert.Equal(t, "30500.00", h.HousingCosts.StringFixed(2))
	require.Len(t, h.Mortgages(), 1)

	// Paying the mortgage off does not reduce housing costs.
	m.MakePayment()
	assert.False(t, m.IsActive())
	assert.Equal(t, "30500.00", h.HousingCosts.StringFixed(2))

	// The returned slice is a copy.
	list := h.Mortgages()
	list[0] = nil
	assert.NotNil(t, h.Mortgages()[0])
}

func TestHousehold_IncreaseLivingCosts(t *testing.T) {
	h := newTestHousehold()
	h.IncreaseLivingCosts(ChildLivingCostIncrease)
	assert.Equal(t, "55000.00", h.LivingCosts.StringFixed(2))
}

func TestHousehold_MemberByName(t *testing.T) {
	h := newTestHousehold()
	h.Members = append(h.Members, NewPerson("Jason", dec("1"), dec("0"), decimal.Zero))

	p, ok := h.MemberByName("Jason")
	require.True(t, ok)
	assert.Equal(t, "80000.00", p.Income.StringFixed(2), "first match wins")

	_, ok = h.MemberByName("jason")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = h.MemberByName("Nobody")
	assert.False(t, ok)
}
