package output

import (
	"github.com/goccy/go-json"

	"github.com/rpgo/financial-planner/internal/domain"
)

// JSONFormatter serializes the results and their summary as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

type jsonReport struct {
	Results []Record       `json:"results"`
	Summary summaryPayload `json:"summary"`
}

func (j JSONFormatter) Format(results []domain.PeriodResult) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		Results: Records(results),
		Summary: Summarize(results).payload(),
	}, "", "  ")
}
