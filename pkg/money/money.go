// Package money holds the rounding and coercion rules shared by every
// monetary calculation in the planner.
//
// Amounts are rounded half-up (away from zero) to cents after every
// operation that produces money, and rates are rounded to four places.
// shopspring's Round implements exactly that; RoundBank must never be used.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// CentPlaces is the precision of every monetary amount.
	CentPlaces int32 = 2
	// RatePlaces is the precision of every rate (tax, interest, inflation).
	RatePlaces int32 = 4
)

var (
	// Zero is a zero amount.
	Zero = decimal.Zero
	// One is the multiplicative identity, used for (1 + rate) growth factors.
	One = decimal.NewFromInt(1)
)

// Cents rounds an amount half-up to two decimal places.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// Rate rounds a rate half-up to four decimal places.
func Rate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatePlaces)
}

// Grow applies (1 + rate) to an amount and rounds the result to cents.
func Grow(amount, rate decimal.Decimal) decimal.Decimal {
	return Cents(amount.Mul(One.Add(rate)))
}

// Sum adds amounts and rounds the total to cents.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Cents(total)
}

// String renders an amount with exactly two decimal digits.
func String(d decimal.Decimal) string {
	return d.StringFixed(CentPlaces)
}

// Format renders an amount as a dollar figure.
func Format(d decimal.Decimal) string {
	return "$" + String(d)
}

// FromAny converts a decoded configuration value into a decimal.
// Integers, floats, numeric strings and decimals are accepted; booleans,
// nil and composite values are not.
func FromAny(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return Zero, fmt.Errorf("value %d out of range", n)
		}
		return decimal.NewFromInt(int64(n)), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Zero, fmt.Errorf("value %v is not a finite number", n)
		}
		return decimal.NewFromFloat(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return Zero, fmt.Errorf("cannot convert %q to a number", n)
		}
		return d, nil
	default:
		return Zero, fmt.Errorf("cannot convert %v (%T) to a number", v, v)
	}
}

// IntFromAny converts a decoded configuration value into an int.
// Floats are truncated toward zero; strings must hold an integer literal.
func IntFromAny(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("value %d out of range", n)
		}
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("value %v is not a finite number", n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to an integer", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert %v (%T) to an integer", v, v)
	}
}
