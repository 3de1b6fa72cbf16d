package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMortgage_AnnualPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		term      int
		want      string
	}{
		{"one year term", "10000", "0.05", 1, "10500.00"},
		{"two year term", "10000", "0.10", 2, "5761.90"},
		{"zero rate straight line", "90000", "0", 30, "3000.00"},
		{"zero rate rounding", "100000", "0", 30, "3333.33"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMortgage(dec(tt.principal), dec(tt.rate), tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.AnnualPayment.StringFixed(2))
			assert.True(t, m.RemainingBalance.Equal(m.Principal))
			assert.True(t, m.IsActive())
		})
	}
}

func TestNewMortgage_Invalid(t *testing.T) {
	_, err := NewMortgage(dec("1000"), dec("0.05"), 0)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewMortgage(dec("-1000"), dec("0.05"), 30)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewMortgage(dec("1000"), dec("-0.05"), 30)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestMortgage_SingleTermPaysOff(t *testing.T) {
	m, err := NewMortgage(dec("10000"), dec("0.05"), 1)
	require.NoError(t, err)

	paid := m.MakePayment()
	assert.Equal(t, "10000.00", paid.StringFixed(2))
	assert.True(t, m.RemainingBalance.IsZero())
	assert.False(t, m.IsActive())

	assert.True(t, m.MakePayment().IsZero(), "inactive mortgage pays nothing")
	assert.True(t, m.RemainingBalance.IsZero())
}

func TestMortgage_StepwiseRounding(t *testing.T) {
	m, err := NewMortgage(dec("10000"), dec("0.10"), 2)
	require.NoError(t, err)

	// interest 1000.00, principal 5761.90 - 1000.00
	assert.Equal(t, "4761.90", m.MakePayment().StringFixed(2))
	assert.Equal(t, "5238.10", m.RemainingBalance.StringFixed(2))

	// interest 523.81, principal 5238.09 would leave 0.01; the cap keeps the
	// balance from going negative on later payments.
	assert.Equal(t, "5238.09", m.MakePayment().StringFixed(2))
	assert.Equal(t, "0.01", m.RemainingBalance.StringFixed(2))
	assert.True(t, m.IsActive())

	assert.Equal(t, "0.01", m.MakePayment().StringFixed(2))
	assert.True(t, m.RemainingBalance.IsZero())
}

func TestMortgage_BalanceMonotonicAndNonNegative(t *testing.T) {
	m, err := NewMortgage(dec("350000"), dec("0.045"), DefaultMortgageTermYears)
	require.NoError(t, err)
	payment := m.AnnualPayment

	prev := m.RemainingBalance
	for i := 0; i < DefaultMortgageTermYears+5; i++ {
		m.MakePayment()
		assert.True(t, m.RemainingBalance.LessThanOrEqual(prev), "payment %d increased the balance", i)
		assert.False(t, m.RemainingBalance.IsNegative(), "payment %d went negative", i)
		prev = m.RemainingBalance
	}
	assert.False(t, m.IsActive())
	assert.True(t, payment.Equal(m.AnnualPayment), "annual payment is immutable")
	assert.True(t, decimal.Zero.Equal(m.RemainingBalance))
}
