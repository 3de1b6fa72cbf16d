package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/financial-planner/internal/calculation"
	"github.com/rpgo/financial-planner/internal/config"
	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/internal/output"
	"github.com/rpgo/financial-planner/internal/storage"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		format    string
		outPath   string
		csvReport string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Simulate one scenario and print or write the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, raw, err := simulateFile(a, args[0])
			if err != nil {
				return err
			}
			results := engine.Results()

			f, err := output.GetFormatterByName(format)
			if err != nil {
				return err
			}
			f = decorate(f, engine.Name(), engine.InflationRate())
			if err := emit(cmd.OutOrStdout(), f, results, outPath); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outPath)
			}

			if cmd.Flags().Changed("csv-report") {
				path, err := output.GenerateReport(results, csvReport)
				if err != nil {
					return err
				}
				a.logger.Info("report generated and saved", "path", path)
			}

			if cmd.Flags().Changed("db") {
				a.cfg.DBPath = dbPath
			}
			if a.cfg.DBPath != "" {
				id, err := saveRun(cmd.Context(), a, engine, raw)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Run saved as %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: "+formatList())
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the formatted output to this file instead of stdout")
	cmd.Flags().StringVar(&csvReport, "csv-report", "", "also write the standard results CSV")
	cmd.Flags().Lookup("csv-report").NoOptDefVal = output.DefaultReportFilename
	cmd.Flags().StringVar(&dbPath, "db", "", "record the run in this SQLite database (default $PLANNER_DB_PATH)")
	return cmd
}

// simulateFile loads, validates and runs one scenario file.
func simulateFile(a *app, path string) (*calculation.SimulationEngine, domain.RawConfig, error) {
	raw, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	engine := calculation.NewSimulationEngine()
	engine.SetLogger(a.engineLogger())
	if err := engine.LoadScenario(raw); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := engine.RunSimulation(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range engine.Warnings() {
		a.logger.Warn("event skipped", "year", w.Year, "event", w.Event, "code", w.Code, "message", w.Message)
	}
	return engine, raw, nil
}

// decorate fills scenario-specific presentation fields on formatters that
// have them.
func decorate(f output.Formatter, title string, inflation decimal.Decimal) output.Formatter {
	if h, ok := f.(output.HTMLFormatter); ok {
		h.Title = title
		h.Assumptions = output.GenerateAssumptions(inflation)
		return h
	}
	return f
}

// emit writes the formatted results to path, or to w when path is empty.
func emit(w io.Writer, f output.Formatter, results []domain.PeriodResult, path string) error {
	if path != "" {
		_, err := output.WriteFormatted(f, results, path)
		return err
	}
	if len(results) == 0 {
		return output.ErrNoResults
	}
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func saveRun(ctx context.Context, a *app, engine *calculation.SimulationEngine, raw domain.RawConfig) (string, error) {
	repo, err := InitSQLite(a.logger, a.cfg.DBPath)
	if err != nil {
		return "", err
	}
	defer repo.Close()

	start, end := engine.Years()
	return repo.SaveRun(ctx, &storage.Run{
		Name:          engine.Name(),
		StartYear:     start,
		EndYear:       end,
		InflationRate: engine.InflationRate(),
		Scenario:      raw,
		Results:       engine.Results(),
		Warnings:      engine.Warnings(),
	})
}

func formatList() string {
	return strings.Join(output.AvailableFormatterNames(), ", ")
}
