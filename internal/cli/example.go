package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/financial-planner/internal/config"
)

func newExampleCommand(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser := config.NewInputParser()
			if outPath == "-" {
				data, err := yaml.Marshal(map[string]any(parser.CreateExampleConfiguration()))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := parser.WriteExampleConfiguration(outPath); err != nil {
				return err
			}
			a.logger.Info("example scenario written", "path", outPath)
			fmt.Fprintf(cmd.ErrOrStderr(), "Example scenario written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "example_scenario.yaml", `destination file, or "-" for stdout`)
	return cmd
}
