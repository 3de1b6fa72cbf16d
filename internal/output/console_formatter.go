package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rpgo/financial-planner/internal/domain"
)

// ConsoleFormatter renders an aligned table followed by a short summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results []domain.PeriodResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HOUSEHOLD FINANCIAL SIMULATION")
	fmt.Fprintln(&buf, "================================")

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tIncome\tTaxes\tMandatory\tLeftover\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", r.Year,
			FormatCurrency(r.TotalIncome),
			FormatCurrency(r.TotalTaxes),
			FormatCurrency(r.TotalMandatoryExpenses),
			FormatCurrency(r.Leftover),
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	s := Summarize(results)
	if s.Years == 0 {
		return buf.Bytes(), nil
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Years simulated:     %d (%d-%d)\n", s.Years, s.FirstYear, s.LastYear)
	fmt.Fprintf(&buf, "Cumulative leftover: %s\n", FormatCurrency(s.CumulativeLeftover))
	fmt.Fprintf(&buf, "Best year:           %d (%s)\n", s.BestYear, FormatCurrency(s.BestLeftover))
	fmt.Fprintf(&buf, "Worst year:          %d (%s)\n", s.WorstYear, FormatCurrency(s.WorstLeftover))
	if s.HasDeficit() {
		fmt.Fprintf(&buf, "First deficit year:  %d (%d deficit year(s))\n", s.FirstDeficitYear, s.DeficitYears)
	}
	return buf.Bytes(), nil
}
