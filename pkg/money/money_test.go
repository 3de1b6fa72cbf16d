package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsRoundsHalfUp(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
		{"2.365", "2.37"}, // banker's rounding would give 2.36
		{"2.375", "2.38"},
		{"-2.345", "-2.35"},
		{"87418.16", "87418.16"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := Cents(decimal.RequireFromString(c.in))
			assert.Equal(t, c.out, String(got))
		})
	}
}

func TestRateRoundsToFourPlaces(t *testing.T) {
	assert.Equal(t, "0.0201", Rate(decimal.RequireFromString("0.02005")).String())
	assert.Equal(t, "0.2", Rate(decimal.NewFromFloat(0.2)).String())
	assert.True(t, Rate(decimal.NewFromFloat(0.045)).Equal(decimal.RequireFromString("0.0450")))
}

func TestGrowAndSum(t *testing.T) {
	assert.Equal(t, "82400.00", String(Grow(decimal.NewFromInt(80000), decimal.RequireFromString("0.03"))))
	assert.Equal(t, "87418.16", String(Grow(decimal.RequireFromString("84872"), decimal.RequireFromString("0.03"))))
	assert.Equal(t, "144200.00", String(Sum(decimal.NewFromInt(82400), decimal.NewFromInt(61800))))
	assert.Equal(t, "0.00", String(Sum()))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1234.50", Format(decimal.NewFromFloat(1234.5)))
}

func TestFromAny(t *testing.T) {
	ok := []struct {
		in   any
		want string
	}{
		{80000, "80000"},
		{int64(60000), "60000"},
		{uint64(5), "5"},
		{0.25, "0.25"},
		{" 1234.56 ", "1234.56"},
		{decimal.NewFromInt(7), "7"},
	}
	for _, c := range ok {
		got, err := FromAny(c.in)
		require.NoError(t, err, "%v", c.in)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "%v -> %s", c.in, got)
	}

	for _, bad := range []any{"abc", true, nil, []any{1}, map[string]any{}} {
		_, err := FromAny(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestIntFromAny(t *testing.T) {
	got, err := IntFromAny(2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, got)

	got, err = IntFromAny("2026")
	require.NoError(t, err)
	assert.Equal(t, 2026, got)

	got, err = IntFromAny(2025.9)
	require.NoError(t, err)
	assert.Equal(t, 2025, got)

	for _, bad := range []any{"two thousand and twenty-six", "2024.5", false, nil} {
		_, err := IntFromAny(bad)
		assert.Error(t, err, "%v", bad)
	}
}
