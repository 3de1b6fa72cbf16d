package output

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rpgo/financial-planner/internal/domain"
)

// ErrUnsupportedFormat is returned for an unknown formatter name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter renders simulation results in one report format.
type Formatter interface {
	Format(results []domain.PeriodResult) ([]byte, error)
	// Name is the canonical format name used on the command line.
	Name() string
	// Extension is the file extension used when writing the output.
	Extension() string
}

// nowFunc is replaced in tests.
var nowFunc = time.Now

// WriteFormatted runs a formatter and writes its output to path. An empty
// path writes to a timestamped file in the working directory. It returns
// the path written.
func WriteFormatted(f Formatter, results []domain.PeriodResult, path string) (string, error) {
	if len(results) == 0 {
		return "", ErrNoResults
	}
	data, err := f.Format(results)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if path == "" {
		path = fmt.Sprintf("simulation_report_%s.%s", nowFunc().Format("20060102_150405"), f.Extension())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &ReportWriteError{Path: path, Err: err}
	}
	return path, nil
}

var registry = []Formatter{
	CSVSummarizer{},
	CSVDetailedExporter{},
	ConsoleFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
	XLSXFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) (Formatter, error) {
	canonical := NormalizeFormatName(name)
	if i := slices.IndexFunc(registry, func(f Formatter) bool { return f.Name() == canonical }); i >= 0 {
		return registry[i], nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

var formatAliases = map[string]string{
	"csv-detailed": "detailed-csv",
	"csv-summary":  "csv",
	"detailed":     "detailed-csv",
	"html-report":  "html",
	"json-pretty":  "json",
	"table":        "console",
	"text":         "console",
	"excel":        "xlsx",
}

// NormalizeFormatName maps a user-supplied name or alias to its canonical
// format name.
func NormalizeFormatName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[key]; ok {
		return canonical
	}
	return key
}

// AvailableFormatterNames lists the canonical format names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, len(registry))
	for i, f := range registry {
		names[i] = f.Name()
	}
	slices.Sort(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	return slices.Sorted(maps.Keys(formatAliases))
}
