package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/pkg/money"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatPercentage formats a fraction (0.02) as a percentage (2.00%).
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).StringFixed(2) + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }

var decimalHundred = decimal.NewFromInt(100)
