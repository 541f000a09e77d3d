package calculation

import (
	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	breakEvenMaxIterations = 60
	breakEvenNPVTolerance  = 1         // within one currency unit of NPV
	breakEvenMinWidth      = 0.0000001 // occupancy resolution
)

// CalculateBreakEvenOccupancy searches for the flat occupancy at which the project's NPV is zero.
// NPV rises with occupancy, so a binary search over [0, 1] is used. When even full occupancy
// leaves NPV negative the result is not reached and reports occupancy 1.
func (ce *CalculationEngine) CalculateBreakEvenOccupancy(a domain.FinancialAssumptions) (*domain.BreakEvenResult, error) {
	if err := ValidateAssumptions(&a); err != nil {
		return nil, err
	}

	npvAt := func(occupancy decimal.Decimal) decimal.Decimal {
		flat := a.WithFlatOccupancy(occupancy)
		series := buildSeries(&flat, flatTaxRate(flat.TaxRate))
		return seriesNPV(&series)
	}

	minOcc := decimal.Zero
	maxOcc := decimal.NewFromInt(1)
	tolerance := decimal.NewFromInt(breakEvenNPVTolerance)
	minWidth := decimal.NewFromFloat(breakEvenMinWidth)
	two := decimal.NewFromInt(2)

	if npv := npvAt(maxOcc); npv.IsNegative() {
		ce.Logger.Debugf("break-even: NPV at full occupancy is %s, no break-even", npv.StringFixed(2))
		return &domain.BreakEvenResult{Occupancy: maxOcc, NPV: npv}, nil
	}
	if npv := npvAt(minOcc); !npv.IsNegative() {
		return &domain.BreakEvenResult{Occupancy: minOcc, Reached: true, NPV: npv}, nil
	}

	i := 0
	for ; i < breakEvenMaxIterations; i++ {
		testOcc := minOcc.Add(maxOcc).Div(two)
		npv := npvAt(testOcc)

		if npv.Abs().LessThan(tolerance) {
			return &domain.BreakEvenResult{Occupancy: testOcc, Reached: true, NPV: npv, Iterations: i + 1}, nil
		}
		if npv.IsNegative() {
			minOcc = testOcc
		} else {
			maxOcc = testOcc
		}
		if maxOcc.Sub(minOcc).LessThan(minWidth) {
			i++
			break
		}
	}

	// Report the upper bound, the smallest occupancy known to keep NPV non-negative
	return &domain.BreakEvenResult{Occupancy: maxOcc, Reached: true, NPV: npvAt(maxOcc), Iterations: i}, nil
}
