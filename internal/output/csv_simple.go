package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"
)

// SummaryHeader is the column layout of the standard results CSV.
var SummaryHeader = []string{"Year", "Total Income", "Total Taxes", "Total Mandatory Expenses", "Leftover", "Naive Discretionary"}

// CSVSummarizer writes one row per simulated year with the six headline columns.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results []domain.PeriodResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(SummaryHeader); err != nil {
		return nil, err
	}
	for _, r := range results {
		row := []string{
			intToString(r.Year),
			money.String(r.TotalIncome),
			money.String(r.TotalTaxes),
			money.String(r.TotalMandatoryExpenses),
			money.String(r.Leftover),
			money.String(r.NaiveDiscretionary),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
