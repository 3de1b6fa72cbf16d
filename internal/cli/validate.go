package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/financial-planner/internal/config"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Check scenario files without simulating them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			failed := 0
			for _, path := range args {
				raw, err := parser.LoadFromFile(path)
				if err == nil {
					err = parser.ValidateConfiguration(raw)
				}
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenario file(s) invalid", failed, len(args))
			}
			a.logger.Debug("all scenarios valid", "count", len(args))
			return nil
		},
	}
}
