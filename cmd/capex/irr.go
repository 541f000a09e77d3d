package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/capexplan/capex-calculator/internal/calculation"
)

var (
	irrGuess         float64
	irrMaxIterations int
	irrTolerance     float64
	irrDiscountRate  float64
)

var irrCmd = &cobra.Command{
	Use:   "irr -- <flow0> <flow1> ...",
	Short: "Solve the internal rate of return of a cash flow series",
	Long:  "Solve the IRR of a series whose first element is the period-0 flow (usually the negative investment). Separate negative values from flags with --, or pass a single comma separated list.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flows, err := parseFlows(args)
		if err != nil {
			return err
		}

		res := calculation.SolveIRR(flows, calculation.IRRConfig{
			MaxIterations: irrMaxIterations,
			Tolerance:     irrTolerance,
		}.WithGuess(irrGuess))

		out := cmd.OutOrStdout()
		status := fmt.Sprintf("converged in %d iterations", res.Iterations)
		if !res.Converged {
			status = fmt.Sprintf("did not converge after %d iterations", res.Iterations)
		}
		fmt.Fprintf(out, "IRR: %.4f%% (%s)\n", res.Rate*100, status)
		if cmd.Flags().Changed("discount-rate") {
			fmt.Fprintf(out, "NPV at %.2f%%: %.2f\n", irrDiscountRate*100, calculation.NPVAt(flows, irrDiscountRate))
		}
		return nil
	},
}

// parseFlows accepts flows as separate arguments, comma separated lists or a mix of both.
func parseFlows(args []string) ([]float64, error) {
	var flows []float64
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid cash flow %q: %w", field, err)
			}
			flows = append(flows, v)
		}
	}
	if len(flows) < 2 {
		return nil, fmt.Errorf("at least two cash flows are required, got %d", len(flows))
	}
	return flows, nil
}

func init() {
	irrCmd.Flags().Float64Var(&irrGuess, "guess", calculation.DefaultIRRGuess, "initial rate guess")
	irrCmd.Flags().IntVar(&irrMaxIterations, "max-iterations", calculation.DefaultIRRMaxIterations, "Newton-Raphson iteration budget")
	irrCmd.Flags().Float64Var(&irrTolerance, "tolerance", calculation.DefaultIRRTolerance, "absolute NPV tolerance for convergence")
	irrCmd.Flags().Float64Var(&irrDiscountRate, "discount-rate", 0, "also report NPV at this rate")
	rootCmd.AddCommand(irrCmd)
}
