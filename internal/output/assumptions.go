package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/internal/domain"
)

// DefaultAssumptions lists the fixed modeling rules rendered in detailed outputs.
var DefaultAssumptions = GenerateAssumptions(decimal.Zero)

// GenerateAssumptions lists the modeling rules for a run at inflationRate.
func GenerateAssumptions(inflationRate decimal.Decimal) []string {
	inflation := "No inflation applied to living or housing costs"
	if inflationRate.IsPositive() {
		inflation = fmt.Sprintf("Living and housing costs inflate by %s annually", FormatPercentage(inflationRate))
	}
	return []string{
		fmt.Sprintf("Member incomes grow by %s annually", FormatPercentage(domain.IncomeGrowthRate)),
		inflation,
		fmt.Sprintf("Each new child adds %s to living costs", FormatCurrency(domain.ChildLivingCostIncrease)),
		fmt.Sprintf("House purchases take a %d-year fixed mortgage; the payment is added to housing costs", domain.DefaultMortgageTermYears),
		"Events take effect in the year after the year they are dated",
		"Windfalls count as income once, in the first year they are visible",
	}
}
