package output

import (
	"testing"

	"github.com/rpgo/financial-planner/internal/domain"
)

func TestSummarize(t *testing.T) {
	results := buildTestResults()
	results = append(results, result(2027, "100000", "30000", "80000"), result(2028, "100000", "30000", "90000"))

	s := Summarize(results)
	if s.Years != 5 || s.FirstYear != 2024 || s.LastYear != 2028 {
		t.Fatalf("unexpected span: %+v", s)
	}
	if s.BestYear != 2026 || s.BestLeftover.StringFixed(2) != "41749.20" {
		t.Fatalf("best = %d %s", s.BestYear, s.BestLeftover)
	}
	if s.WorstYear != 2028 || s.WorstLeftover.StringFixed(2) != "-20000.00" {
		t.Fatalf("worst = %d %s", s.WorstYear, s.WorstLeftover)
	}
	if !s.HasDeficit() || s.FirstDeficitYear != 2027 || s.DeficitYears != 2 {
		t.Fatalf("deficit = %d (%d)", s.FirstDeficitYear, s.DeficitYears)
	}
	if got := s.CumulativeLeftover.StringFixed(2); got != "89589.20" {
		t.Fatalf("cumulative = %s", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Years != 0 || s.HasDeficit() {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarize_TiesKeepEarliestYear(t *testing.T) {
	s := Summarize([]domain.PeriodResult{
		result(2024, "100", "0", "50"),
		result(2025, "100", "0", "50"),
	})
	if s.BestYear != 2024 || s.WorstYear != 2024 {
		t.Fatalf("ties should keep the earliest year: best=%d worst=%d", s.BestYear, s.WorstYear)
	}
}
