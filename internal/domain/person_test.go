package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewPerson_RoundsInputs(t *testing.T) {
	p := NewPerson("Jason", dec("80000.005"), dec("0.24995"), dec("10.004"))

	assert.Equal(t, "Jason", p.Name)
	assert.Equal(t, "80000.01", p.Income.StringFixed(2))
	assert.True(t, p.TaxRate.Equal(dec("0.25")))
	assert.Equal(t, "10.00", p.Savings.StringFixed(2))
}

func TestPerson_UpdateIncome(t *testing.T) {
	p := NewPerson("Jason", dec("80000"), dec("0.25"), decimal.Zero)

	p.UpdateIncome()
	assert.Equal(t, "82400.00", p.Income.StringFixed(2))
	p.UpdateIncome()
	assert.Equal(t, "84872.00", p.Income.StringFixed(2))
	p.UpdateIncome()
	assert.Equal(t, "87418.16", p.Income.StringFixed(2))
}

func TestPerson_UpdateIncomeSpecific(t *testing.T) {
	p := NewPerson("Linda", dec("60000"), dec("0.20"), decimal.Zero)

	require.NoError(t, p.UpdateIncomeSpecific(dec("75000.555")))
	assert.Equal(t, "75000.56", p.Income.StringFixed(2))

	err := p.UpdateIncomeSpecific(dec("-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "75000.56", p.Income.StringFixed(2), "failed override must not change income")

	require.NoError(t, p.UpdateIncomeSpecific(decimal.Zero))
	assert.True(t, p.Income.IsZero())
}

func TestPerson_CalculateTaxes(t *testing.T) {
	tests := []struct {
		income, rate, want string
	}{
		{"80000", "0.25", "20000.00"},
		{"63654", "0.20", "12730.80"},
		{"87418.16", "0.25", "21854.54"},
		{"65563.62", "0.20", "13112.72"},
		{"100.10", "0.125", "12.51"},
		{"100.20", "0.125", "12.53"}, // 12.525
	}
	for _, tt := range tests {
		p := NewPerson("x", dec(tt.income), dec(tt.rate), decimal.Zero)
		before := p.Income
		assert.Equal(t, tt.want, p.CalculateTaxes().StringFixed(2), "%s @ %s", tt.income, tt.rate)
		assert.True(t, before.Equal(p.Income), "taxes must not mutate income")
	}
}
