package output

import (
	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"
)

// Record is the wire form of a PeriodResult. Amounts are fixed two-place
// strings so JSON consumers never see binary floating point.
type Record struct {
	Year                   int    `json:"year"`
	TotalIncome            string `json:"total_income"`
	TotalTaxes             string `json:"total_taxes"`
	TotalMandatoryExpenses string `json:"total_mandatory_expenses"`
	Leftover               string `json:"leftover"`
	NaiveDiscretionary     string `json:"naive_discretionary"`
	LivingCosts            string `json:"living_costs"`
	HousingCosts           string `json:"housing_costs"`
}

// NewRecord converts one result.
func NewRecord(r domain.PeriodResult) Record {
	return Record{
		Year:                   r.Year,
		TotalIncome:            money.String(r.TotalIncome),
		TotalTaxes:             money.String(r.TotalTaxes),
		TotalMandatoryExpenses: money.String(r.TotalMandatoryExpenses),
		Leftover:               money.String(r.Leftover),
		NaiveDiscretionary:     money.String(r.NaiveDiscretionary),
		LivingCosts:            money.String(r.LivingCosts),
		HousingCosts:           money.String(r.HousingCosts),
	}
}

// Records converts results in order.
func Records(results []domain.PeriodResult) []Record {
	out := make([]Record, 0, len(results))
	for _, r := range results {
		out = append(out, NewRecord(r))
	}
	return out
}
