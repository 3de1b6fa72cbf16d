package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rpgo/financial-planner/internal/calculation"
	"github.com/rpgo/financial-planner/internal/config"
	"github.com/rpgo/financial-planner/internal/output"
	"github.com/rpgo/financial-planner/internal/storage"
)

func newBatchCommand(a *app) *cobra.Command {
	var (
		outDir      string
		format      string
		concurrency int
		dbPath      string
	)

	cmd := &cobra.Command{
		Use:   "batch <scenario.yaml>...",
		Short: "Simulate several independent scenarios concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			scenarios := make([]calculation.BatchScenario, 0, len(args))
			for _, path := range args {
				raw, err := parser.LoadFromFile(path)
				if err != nil {
					return err
				}
				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				scenarios = append(scenarios, calculation.BatchScenario{Name: name, Config: raw})
			}

			limit := a.cfg.BatchConcurrency
			if cmd.Flags().Changed("concurrency") {
				limit = concurrency
			}
			results, err := calculation.RunBatch(cmd.Context(), scenarios, limit, a.engineLogger())
			if err != nil {
				return err
			}

			if outDir != "" {
				f, err := output.GetFormatterByName(format)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
				for _, r := range results {
					path := filepath.Join(outDir, r.Name+"."+f.Extension())
					if _, err := output.WriteFormatted(f, r.Results, path); err != nil {
						return err
					}
				}
			}

			if cmd.Flags().Changed("db") {
				a.cfg.DBPath = dbPath
			}
			if a.cfg.DBPath != "" {
				repo, err := InitSQLite(a.logger, a.cfg.DBPath)
				if err != nil {
					return err
				}
				defer repo.Close()
				for i, r := range results {
					run := &storage.Run{Name: r.Name, Scenario: scenarios[i].Config, Results: r.Results, Warnings: r.Warnings}
					if len(r.Results) > 0 {
						run.StartYear = r.Results[0].Year
						run.EndYear = r.Results[len(r.Results)-1].Year
					}
					if _, err := repo.SaveRun(cmd.Context(), run); err != nil {
						return err
					}
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tYEARS\tCUMULATIVE LEFTOVER\tWORST YEAR\tFIRST DEFICIT\tWARNINGS")
			for _, r := range results {
				s := output.Summarize(r.Results)
				deficit := "-"
				if s.HasDeficit() {
					deficit = fmt.Sprint(s.FirstDeficitYear)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%d\n", r.Name, s.Years,
					output.FormatCurrency(s.CumulativeLeftover), s.WorstYear, deficit, len(r.Warnings))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&outDir, "output-dir", "", "write one report per scenario into this directory")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "per-scenario report format: "+formatList())
	cmd.Flags().IntVar(&concurrency, "concurrency", calculation.DefaultBatchConcurrency, "maximum scenarios simulated at once (default $PLANNER_BATCH_CONCURRENCY)")
	cmd.Flags().StringVar(&dbPath, "db", "", "record every run in this SQLite database")
	return cmd
}
