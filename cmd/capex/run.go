package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/capexplan/capex-calculator/internal/config"
	"github.com/capexplan/capex-calculator/internal/output"
)

var (
	runConfigPath string
	runFormat     string
	runOutDir     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate every scenario, contract and sensitivity block of a configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfgFile, err := config.NewInputParser().LoadFromFile(runConfigPath)
		if err != nil {
			return err
		}

		report, err := newEngine().RunScenarios(ctx, cfgFile)
		if err != nil {
			return err
		}

		format := runFormat
		if format == "" {
			format = settings.Output.Format
		}
		dir := runOutDir
		if dir == "" {
			dir = settings.Output.Dir
		}

		// no destination: print to stdout
		if dir == "" && output.NormalizeFormatName(format) != "all" {
			data, err := output.Render(report, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		paths, err := output.GenerateReport(report, format, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			zap.L().Info("report written", zap.String("run_id", report.RunID), zap.String("path", p))
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "scenario configuration file (YAML)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "report format (console, console-lite, csv, ledger-csv, sensitivity-csv, json, all)")
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", "", "write the report into this directory instead of stdout")
	_ = runCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(runCmd)
}
