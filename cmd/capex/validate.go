package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/capexplan/capex-calculator/internal/config"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a configuration file without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, err := config.NewInputParser().LoadFromFile(validateConfigPath)
		if err != nil {
			return err
		}
		params := 0
		if cfgFile.Sensitivity != nil {
			params = len(cfgFile.Sensitivity.Nominal)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration valid: %d scenarios, %d revenue contracts, %d sensitivity parameters\n",
			len(cfgFile.Scenarios), len(cfgFile.RevenueContracts), params)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "", "scenario configuration file (YAML)")
	_ = validateCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(validateCmd)
}
