package output

import (
	"errors"
	"fmt"

	"github.com/rpgo/financial-planner/internal/domain"
)

// DefaultReportFilename is used when GenerateReport is given no filename.
const DefaultReportFilename = "financial_simulation_results.csv"

var (
	// ErrNoResults is returned when there is nothing to report.
	ErrNoResults = errors.New("no simulation results to report; run the simulation first")
	// ErrReportWrite classifies failures to persist a report.
	ErrReportWrite = errors.New("failed to generate report")
)

// ReportWriteError records the destination that could not be written.
type ReportWriteError struct {
	Path string
	Err  error
}

func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("failed to write report to %s: %v", e.Path, e.Err)
}

func (e *ReportWriteError) Unwrap() error { return e.Err }

func (e *ReportWriteError) Is(target error) bool { return target == ErrReportWrite }

// GenerateReport writes the standard results CSV to filename, or to
// DefaultReportFilename when filename is empty.
func GenerateReport(results []domain.PeriodResult, filename string) (string, error) {
	if filename == "" {
		filename = DefaultReportFilename
	}
	return WriteFormatted(CSVSummarizer{}, results, filename)
}

// GenerateFormattedReport writes results using the named formatter.
func GenerateFormattedReport(results []domain.PeriodResult, format, path string) (string, error) {
	f, err := GetFormatterByName(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, results, path)
}
