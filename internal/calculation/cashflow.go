package calculation

import (
	"math"

	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/capexplan/capex-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// taxRateFunc returns the effective tax rate for a 0-based projection year
type taxRateFunc func(year int) decimal.Decimal

// flatTaxRate applies the same rate to every year
func flatTaxRate(rate decimal.Decimal) taxRateFunc {
	return func(int) decimal.Decimal { return rate }
}

// ProjectCashflows builds the year-by-year ledger for a project and derives its investment metrics.
func ProjectCashflows(a domain.FinancialAssumptions) (*domain.FinancialResult, error) {
	return projectCashflows(&a, IRRConfig{})
}

func projectCashflows(a *domain.FinancialAssumptions, irrCfg IRRConfig) (*domain.FinancialResult, error) {
	if err := ValidateAssumptions(a); err != nil {
		return nil, err
	}

	series := buildSeries(a, flatTaxRate(a.TaxRate))
	irr := SolveIRR(series.Flows(), irrCfg)

	var totalRevenue, totalProfit, totalFCF, totalDiscounted decimal.Decimal
	for _, y := range series.Years {
		totalRevenue = totalRevenue.Add(y.Revenue)
		totalProfit = totalProfit.Add(y.NetIncome)
		totalFCF = totalFCF.Add(y.FreeCashFlow)
		totalDiscounted = totalDiscounted.Add(y.DiscountedCashFlow)
	}

	return &domain.FinancialResult{
		NPV:                a.Capex.Neg().Add(totalDiscounted),
		IRR:                ratePercent(irr.Rate),
		IRRConverged:       irr.Converged,
		IRRIterations:      irr.Iterations,
		ROI:                money.Percent(totalFCF.Sub(a.Capex), a.Capex),
		SimplePayback:      LocatePayback(series.CumulativeCashFlows(), series.FreeCashFlows()),
		DiscountedPayback:  LocatePayback(series.CumulativeDiscountedCashFlows(), series.DiscountedCashFlows()),
		ProfitabilityIndex: totalDiscounted.Div(a.Capex),
		TotalRevenue:       totalRevenue,
		TotalProfit:        totalProfit,
		AnnualDepreciation: annualDepreciation(a),
		BreakEvenOccupancy: breakEvenOccupancy(a),
		Series:             series,
	}, nil
}

// buildSeries runs the ledger arithmetic. Assumptions must already be validated.
func buildSeries(a *domain.FinancialAssumptions, taxRateFor taxRateFunc) domain.CashflowSeries {
	fullRevenue := money.Annual(a.RevenueRatePerMonth).Mul(a.Capacity)
	depreciation := annualDepreciation(a)

	years := make([]domain.YearRecord, 0, a.HorizonYears)
	cumulative := a.Capex.Neg()
	cumulativeDiscounted := a.Capex.Neg()

	for y := 0; y < a.HorizonYears; y++ {
		occupancy := a.OccupancyFor(y)
		revenue := fullRevenue.Mul(occupancy).Mul(money.GrowthFactor(a.RevenueEscalation, y))
		opex := a.AnnualOpex.Mul(money.GrowthFactor(a.OpexEscalation, y))

		dep := decimal.Zero
		if y < a.DepreciationYears {
			dep = depreciation
		}

		ebitda := revenue.Sub(opex)
		taxable := money.Max(decimal.Zero, ebitda.Sub(dep))
		rate := taxRateFor(y)
		tax := taxable.Mul(rate)
		netIncome := ebitda.Sub(tax)
		// No maintenance capex is modeled.
		fcf := netIncome

		discountFactor := money.GrowthFactor(a.DiscountRate, y+1)
		discounted := fcf.Div(discountFactor)

		cumulative = cumulative.Add(fcf)
		cumulativeDiscounted = cumulativeDiscounted.Add(discounted)

		years = append(years, domain.YearRecord{
			Year:                         y + 1,
			Occupancy:                    occupancy,
			Revenue:                      revenue,
			Opex:                         opex,
			Depreciation:                 dep,
			EBITDA:                       ebitda,
			TaxableIncome:                taxable,
			TaxRate:                      rate,
			Tax:                          tax,
			NetIncome:                    netIncome,
			FreeCashFlow:                 fcf,
			CumulativeCashFlow:           cumulative,
			DiscountFactor:               discountFactor,
			DiscountedCashFlow:           discounted,
			CumulativeDiscountedCashFlow: cumulativeDiscounted,
		})
	}

	return domain.CashflowSeries{Investment: a.Capex, Years: years}
}

// seriesNPV is -investment plus the sum of discounted cash flows
func seriesNPV(s *domain.CashflowSeries) decimal.Decimal {
	return s.Investment.Neg().Add(money.Sum(s.DiscountedCashFlows()))
}

func annualDepreciation(a *domain.FinancialAssumptions) decimal.Decimal {
	return a.Capex.Div(decimal.NewFromInt(int64(a.DepreciationYears)))
}

// breakEvenOccupancy is the capacity fraction whose first-year revenue covers first-year opex
// plus annual depreciation. Zero when the project earns no revenue at full occupancy.
func breakEvenOccupancy(a *domain.FinancialAssumptions) decimal.Decimal {
	fullRevenue := money.Annual(a.RevenueRatePerMonth).Mul(a.Capacity)
	if !fullRevenue.IsPositive() {
		return decimal.Zero
	}
	return a.AnnualOpex.Add(annualDepreciation(a)).Div(fullRevenue)
}

// ratePercent converts a solver rate to a percent decimal, mapping non-finite values to zero.
func ratePercent(rate float64) decimal.Decimal {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return decimal.Zero
	}
	return money.ToPercent(decimal.NewFromFloat(rate))
}
