package output

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"
)

// Summary condenses a run into a few headline figures.
type Summary struct {
	Years              int
	FirstYear          int
	LastYear           int
	CumulativeLeftover decimal.Decimal
	BestYear           int
	BestLeftover       decimal.Decimal
	WorstYear          int
	WorstLeftover      decimal.Decimal
	// FirstDeficitYear is the first year with a negative leftover, or 0.
	FirstDeficitYear int
	DeficitYears     int
}

// HasDeficit reports whether any year spent more than it earned.
func (s Summary) HasDeficit() bool { return s.DeficitYears > 0 }

// Summarize scans results once. Ties keep the earliest year.
func Summarize(results []domain.PeriodResult) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}
	s.Years = len(results)
	s.FirstYear = results[0].Year
	s.LastYear = results[len(results)-1].Year
	s.CumulativeLeftover = money.Zero
	s.BestYear, s.BestLeftover = results[0].Year, results[0].Leftover
	s.WorstYear, s.WorstLeftover = results[0].Year, results[0].Leftover

	for _, r := range results {
		s.CumulativeLeftover = s.CumulativeLeftover.Add(r.Leftover)
		if r.Leftover.GreaterThan(s.BestLeftover) {
			s.BestYear, s.BestLeftover = r.Year, r.Leftover
		}
		if r.Leftover.LessThan(s.WorstLeftover) {
			s.WorstYear, s.WorstLeftover = r.Year, r.Leftover
		}
		if r.Leftover.IsNegative() {
			if s.DeficitYears == 0 {
				s.FirstDeficitYear = r.Year
			}
			s.DeficitYears++
		}
	}
	s.CumulativeLeftover = money.Cents(s.CumulativeLeftover)
	return s
}

type summaryPayload struct {
	Years              int    `json:"years"`
	FirstYear          int    `json:"first_year"`
	LastYear           int    `json:"last_year"`
	CumulativeLeftover string `json:"cumulative_leftover"`
	BestYear           int    `json:"best_year"`
	BestLeftover       string `json:"best_leftover"`
	WorstYear          int    `json:"worst_year"`
	WorstLeftover      string `json:"worst_leftover"`
	FirstDeficitYear   int    `json:"first_deficit_year,omitempty"`
	DeficitYears       int    `json:"deficit_years"`
}

func (s Summary) payload() summaryPayload {
	return summaryPayload{
		Years:              s.Years,
		FirstYear:          s.FirstYear,
		LastYear:           s.LastYear,
		CumulativeLeftover: money.String(s.CumulativeLeftover),
		BestYear:           s.BestYear,
		BestLeftover:       money.String(s.BestLeftover),
		WorstYear:          s.WorstYear,
		WorstLeftover:      money.String(s.WorstLeftover),
		FirstDeficitYear:   s.FirstDeficitYear,
		DeficitYears:       s.DeficitYears,
	}
}
