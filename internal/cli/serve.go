package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/financial-planner/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr, dbPath, reportPath, origin string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scenario upload and simulation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("report") {
				cfg.ReportPath = reportPath
			}
			if cmd.Flags().Changed("allowed-origin") {
				cfg.AllowedOrigin = origin
			}

			var store server.RunStore
			if cfg.DBPath != "" {
				repo, err := InitSQLite(a.logger, cfg.DBPath)
				if err != nil {
					return err
				}
				defer repo.Close()
				store = repo
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, a, cfg, store)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $PLANNER_ADDR or :8000)")
	cmd.Flags().StringVar(&dbPath, "db", "", "record runs in this SQLite database (default $PLANNER_DB_PATH)")
	cmd.Flags().StringVar(&reportPath, "report", "", `results CSV written after each run; "-" disables (default financial_simulation_results.csv)`)
	cmd.Flags().StringVar(&origin, "allowed-origin", "", "CORS origin allowed to call the API (default http://localhost:3000)")
	return cmd
}

// runServer is swapped in tests.
var runServer = func(ctx context.Context, a *app, cfg Config, store server.RunStore) error {
	srv := server.New(cfg.serverOptions(), store, a.logger)
	return srv.ListenAndServe(ctx, cfg.Addr)
}
