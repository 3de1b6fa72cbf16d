package domain

import "github.com/shopspring/decimal"

// PeriodResult is the snapshot recorded for one simulated year.
// LivingCosts and HousingCosts are captured before the next period's
// inflation and events are applied.
type PeriodResult struct {
	Year                   int             `json:"year"`
	TotalIncome            decimal.Decimal `json:"total_income"`
	TotalTaxes             decimal.Decimal `json:"total_taxes"`
	TotalMandatoryExpenses decimal.Decimal `json:"total_mandatory_expenses"`
	Leftover               decimal.Decimal `json:"leftover"`
	// NaiveDiscretionary currently equals Leftover; no savings allocation is
	// subtracted yet.
	NaiveDiscretionary decimal.Decimal `json:"naive_discretionary"`
	LivingCosts        decimal.Decimal `json:"living_costs"`
	HousingCosts       decimal.Decimal `json:"housing_costs"`
}

// Warning codes.
const (
	WarningMemberNotFound = "MEMBER_NOT_FOUND"
)

// Warning is a non-fatal condition raised while applying an event.
type Warning struct {
	Year    int       `json:"year"`
	Event   EventType `json:"event"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (w Warning) Error() string { return w.Message }

func (w Warning) Unwrap() error { return w.Err }
