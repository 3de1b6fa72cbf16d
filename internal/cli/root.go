package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rpgo/financial-planner/internal/calculation"
)

type app struct {
	verbose   bool
	logFormat string
	envFile   string

	cfg    Config
	logger *slog.Logger
}

func (a *app) engineLogger() calculation.Logger {
	return calculation.NewSlogLogger(a.logger, "engine")
}

// NewRootCommand builds the planner command tree. Logs go to the command's
// error stream; reports go to its output stream.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Household financial planner",
		Long:          "Simulate a household's income, taxes and mandatory expenses year by year under life events.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.envFile != "" {
				LoadEnvFile(a.envFile)
			} else {
				LoadEnvFile()
			}
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			format := cfg.LogFormat
			if cmd.Flags().Changed("log-format") {
				format = a.logFormat
			}
			a.logger, err = SetupLogger(cmd.ErrOrStderr(), a.verbose, format)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	pf.StringVar(&a.envFile, "env-file", "", "load environment from this file instead of .env")

	root.AddCommand(
		newRunCommand(a),
		newBatchCommand(a),
		newValidateCommand(a),
		newExampleCommand(a),
		newServeCommand(a),
		newHistoryCommand(a),
	)
	return root
}

// Execute runs the root command with args, writing to out and errOut.
func Execute(version string, args []string, out, errOut io.Writer) error {
	root := NewRootCommand(version)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}
