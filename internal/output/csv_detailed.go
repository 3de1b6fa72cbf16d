package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"
)

// CSVDetailedExporter adds the cost components and a running leftover total
// to the summary columns.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(results []domain.PeriodResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := append(append([]string(nil), SummaryHeader...), "Living Costs", "Housing Costs", "Cumulative Leftover")
	if err := w.Write(header); err != nil {
		return nil, err
	}
	cumulative := money.Zero
	for _, r := range results {
		cumulative = cumulative.Add(r.Leftover)
		row := []string{
			intToString(r.Year),
			money.String(r.TotalIncome),
			money.String(r.TotalTaxes),
			money.String(r.TotalMandatoryExpenses),
			money.String(r.Leftover),
			money.String(r.NaiveDiscretionary),
			money.String(r.LivingCosts),
			money.String(r.HousingCosts),
			money.String(cumulative),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
