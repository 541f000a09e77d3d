package main

import (
	"fmt"
	"os"

	calc "github.com/capexplan/capex-calculator/internal/calculation"
	"github.com/capexplan/capex-calculator/internal/config"
	"github.com/shopspring/decimal"
)

// Prints NPV at flat occupancy steps for every scenario, as CSV, to eyeball the break-even search.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file> [steps]")
		return
	}
	steps := 20
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &steps); err != nil || steps < 1 {
			fmt.Println("steps must be a positive integer")
			return
		}
	}

	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	if len(cfg.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	engine := calc.NewCalculationEngine()

	header := "Occupancy"
	for i := range cfg.Scenarios {
		header += fmt.Sprintf(",S%d_NPV,S%d_IRR", i+1, i+1)
	}
	fmt.Println(header)

	stepSize := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(steps)))
	for i := 0; i <= steps; i++ {
		occ := stepSize.Mul(decimal.NewFromInt(int64(i)))
		row := occ.StringFixed(4)
		for _, s := range cfg.Scenarios {
			res, err := calc.ProjectCashflows(s.Assumptions.WithFlatOccupancy(occ))
			if err != nil {
				panic(err)
			}
			irr := "n/a"
			if res.IRRConverged {
				irr = res.IRR.StringFixed(2)
			}
			row += fmt.Sprintf(",%s,%s", res.NPV.StringFixed(0), irr)
		}
		fmt.Println(row)
	}

	for i, s := range cfg.Scenarios {
		be, err := engine.CalculateBreakEvenOccupancy(s.Assumptions)
		if err != nil {
			panic(err)
		}
		fmt.Printf("# S%d %s: break-even occupancy %s (reached=%t, iterations=%d)\n",
			i+1, s.Name, be.Occupancy.StringFixed(4), be.Reached, be.Iterations)
	}
}
