package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/goccy/go-json"

	"github.com/rpgo/financial-planner/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a results table and
// an inline leftover chart.
type HTMLFormatter struct {
	Title       string
	Assumptions []string
}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"json": func(v any) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results []domain.PeriodResult) ([]byte, error) {
	var buf bytes.Buffer

	title := h.Title
	if title == "" {
		title = "Household Financial Simulation"
	}
	assumptions := h.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	years := make([]int, 0, len(results))
	leftovers := make([]float64, 0, len(results))
	for _, r := range results {
		years = append(years, r.Year)
		leftovers = append(leftovers, r.Leftover.InexactFloat64())
	}

	data := struct {
		Title       string
		Results     []domain.PeriodResult
		Summary     Summary
		Assumptions []string
		ChartYears  []int
		ChartValues []float64
	}{title, results, Summarize(results), assumptions, years, leftovers}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
