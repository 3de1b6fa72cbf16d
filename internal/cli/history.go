package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/financial-planner/internal/output"
)

func newHistoryCommand(a *app) *cobra.Command {
	var (
		dbPath string
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show the results of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				a.cfg.DBPath = dbPath
			}
			if a.cfg.DBPath == "" {
				return errors.New("no database configured; pass --db or set PLANNER_DB_PATH")
			}
			repo, err := InitSQLite(a.logger, a.cfg.DBPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			if len(args) == 1 {
				run, err := repo.LoadRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				f, err := output.GetFormatterByName(format)
				if err != nil {
					return err
				}
				f = decorate(f, run.Name, run.InflationRate)
				return emit(cmd.OutOrStdout(), f, run.Results, "")
			}

			runs, err := repo.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tYEARS\tRANGE\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d-%d\t%s\n", r.ID, r.Name, r.Years, r.StartYear, r.EndYear,
					r.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database (default $PLANNER_DB_PATH)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list; 0 lists all")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "format for a single run: "+formatList())
	return cmd
}
