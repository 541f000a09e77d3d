package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/capexplan/capex-calculator/internal/calculation"
	"github.com/capexplan/capex-calculator/internal/config"
)

var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:          "capex",
	Short:        "Capital project financial analysis",
	Long:         "Projects cash flows, IRR, payback, take-or-pay contract revenue, tax incentive impact and TCO sensitivity for capital projects.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env values feed the CAPEX_* settings below
		envErr := godotenv.Load()

		s, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		settings = s

		if err := config.InitLogger(settings.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
			zap.L().Warn("failed to load .env", zap.Error(envErr))
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newEngine builds a calculation engine from the loaded settings.
func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.Workers = settings.Engine.Workers
	engine.IRR = calculation.IRRConfig{
		MaxIterations: settings.Engine.IRRMaxIterations,
		Tolerance:     settings.Engine.IRRTolerance,
	}.WithGuess(settings.Engine.IRRGuess)
	engine.Debug = settings.Log.Level == "debug"
	engine.SetLogger(zap.L().Sugar())
	return engine
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
