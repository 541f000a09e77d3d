package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/capexplan/capex-calculator/internal/config"
	"github.com/capexplan/capex-calculator/internal/output"
)

const defaultConfigFile = "capex_scenarios.yaml"

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example scenario configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigFile
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		example := config.NewInputParser().CreateExampleConfiguration()
		if err := output.SaveConfiguration(example, path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}
