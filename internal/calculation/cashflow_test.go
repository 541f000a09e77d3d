package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ramp(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = dec(v)
	}
	return out
}

// referenceAssumptions is the 2,000 unit / $50M build-out used across tests
func referenceAssumptions() domain.FinancialAssumptions {
	return domain.FinancialAssumptions{
		Capex:               dec("50000000"),
		AnnualOpex:          dec("5000000"),
		RevenueRatePerMonth: dec("150"),
		Capacity:            dec("2000"),
		DiscountRate:        dec("0.10"),
		HorizonYears:        10,
		RevenueEscalation:   dec("0.03"),
		OpexEscalation:      dec("0.04"),
		OccupancyRamp:       ramp("0.25", "0.5", "0.7", "0.85", "0.95", "0.95", "0.95", "0.95", "0.95", "0.95"),
		TaxRate:             dec("0.25"),
		DepreciationYears:   15,
	}
}

// flatAssumptions produces a free cash flow of exactly 250,000 every year for 10 years
func flatAssumptions() domain.FinancialAssumptions {
	return domain.FinancialAssumptions{
		Capex:               dec("1000000"),
		AnnualOpex:          dec("50000"),
		RevenueRatePerMonth: dec("10"),
		Capacity:            dec("2500"),
		DiscountRate:        dec("0.08"),
		HorizonYears:        10,
		OccupancyRamp:       ramp("1", "1", "1", "1", "1", "1", "1", "1", "1", "1"),
		TaxRate:             decimal.Zero,
		DepreciationYears:   10,
	}
}

func TestProjectCashflows_ReferenceScenario(t *testing.T) {
	res, err := ProjectCashflows(referenceAssumptions())
	require.NoError(t, err)

	assert.Len(t, res.Series.Years, 10)
	npv := res.NPV.InexactFloat64()
	assert.False(t, math.IsNaN(npv) || math.IsInf(npv, 0), "NPV must be finite")

	irr := res.IRR.InexactFloat64()
	assert.Greater(t, irr, -100.0)
	assert.Less(t, irr, 500.0)

	// opex outruns revenue every year, so no flow is positive and no IRR exists
	assert.True(t, res.NPV.IsNegative())
	for _, y := range res.Series.Years {
		require.True(t, y.FreeCashFlow.IsNegative(), "year %d fcf %s", y.Year, y.FreeCashFlow)
	}
	assert.False(t, res.IRRConverged, "IRR %s reported as converged", res.IRR)

	payback := res.SimplePayback.Years.InexactFloat64()
	assert.GreaterOrEqual(t, payback, 0.0)
	assert.LessOrEqual(t, payback, 10.0)
	assert.False(t, res.SimplePayback.Reached)

	assert.True(t, res.AnnualDepreciation.Equal(dec("50000000").Div(dec("15"))))
	for i, y := range res.Series.Years {
		assert.Equal(t, i+1, y.Year)
		assert.True(t, y.Depreciation.Equal(res.AnnualDepreciation), "year %d depreciation", y.Year)
	}
}

func TestProjectCashflows_LedgerArithmetic(t *testing.T) {
	a := domain.FinancialAssumptions{
		Capex:               dec("1000"),
		AnnualOpex:          dec("100"),
		RevenueRatePerMonth: dec("10"),
		Capacity:            dec("10"),
		DiscountRate:        dec("0.1"),
		HorizonYears:        3,
		RevenueEscalation:   dec("0.1"),
		OccupancyRamp:       ramp("0.5"), // later years fall back to 0.95
		TaxRate:             dec("0.25"),
		DepreciationYears:   2,
	}
	res, err := ProjectCashflows(a)
	require.NoError(t, err)
	years := res.Series.Years
	require.Len(t, years, 3)

	cases := []struct {
		year                                      int
		occupancy, revenue, dep, taxable, tax, net string
		cumulative                                string
	}{
		{1, "0.5", "600", "500", "0", "0", "500", "-500"},
		{2, "0.95", "1254", "500", "654", "163.5", "990.5", "490.5"},
		{3, "0.95", "1379.4", "0", "1279.4", "319.85", "959.55", "1450.05"},
	}
	for _, c := range cases {
		y := years[c.year-1]
		assert.True(t, y.Occupancy.Equal(dec(c.occupancy)), "year %d occupancy %s", c.year, y.Occupancy)
		assert.True(t, y.Revenue.Equal(dec(c.revenue)), "year %d revenue %s", c.year, y.Revenue)
		assert.True(t, y.Opex.Equal(dec("100")), "year %d opex %s", c.year, y.Opex)
		assert.True(t, y.Depreciation.Equal(dec(c.dep)), "year %d depreciation %s", c.year, y.Depreciation)
		assert.True(t, y.TaxableIncome.Equal(dec(c.taxable)), "year %d taxable %s", c.year, y.TaxableIncome)
		assert.True(t, y.Tax.Equal(dec(c.tax)), "year %d tax %s", c.year, y.Tax)
		assert.True(t, y.NetIncome.Equal(dec(c.net)), "year %d net %s", c.year, y.NetIncome)
		assert.True(t, y.FreeCashFlow.Equal(y.NetIncome), "year %d free cash flow", c.year)
		assert.True(t, y.CumulativeCashFlow.Equal(dec(c.cumulative)), "year %d cumulative %s", c.year, y.CumulativeCashFlow)
	}

	assert.True(t, years[2].DiscountFactor.Equal(dec("1.331")))
	assert.True(t, res.TotalRevenue.Equal(dec("3233.4")))
	assert.True(t, res.TotalProfit.Equal(dec("2450.05")))
	// ROI = (sum FCF - capex) / capex
	assert.True(t, res.ROI.Equal(dec("145.005")), "ROI %s", res.ROI)
	// (100 + 500) / 1200
	assert.InDelta(t, 0.5, res.BreakEvenOccupancy.InexactFloat64(), 1e-12)

	assert.True(t, res.SimplePayback.Reached)
	assert.InDelta(t, 1+500/990.5, res.SimplePayback.Years.InexactFloat64(), 1e-9)
}

func TestProjectCashflows_NPVReconstruction(t *testing.T) {
	variants := []func(a *domain.FinancialAssumptions){
		func(a *domain.FinancialAssumptions) {},
		func(a *domain.FinancialAssumptions) { a.DiscountRate = dec("0.07") },
		func(a *domain.FinancialAssumptions) { a.HorizonYears = 25; a.DepreciationYears = 20 },
		func(a *domain.FinancialAssumptions) { a.OccupancyRamp = nil },
		func(a *domain.FinancialAssumptions) { a.TaxRate = dec("0.35"); a.OpexEscalation = dec("0.06") },
		func(a *domain.FinancialAssumptions) { a.RevenueRatePerMonth = dec("20") },
	}

	for i, mutate := range variants {
		a := referenceAssumptions()
		mutate(&a)
		res, err := ProjectCashflows(a)
		require.NoError(t, err, "variant %d", i)

		sum := decimal.Zero
		for _, y := range res.Series.Years {
			sum = sum.Add(y.DiscountedCashFlow)
		}
		expected := a.Capex.Neg().Add(sum)
		assert.True(t, res.NPV.Equal(expected), "variant %d: NPV %s != reconstruction %s", i, res.NPV, expected)

		last := res.Series.Years[len(res.Series.Years)-1]
		assert.True(t, last.CumulativeDiscountedCashFlow.Equal(res.NPV), "variant %d: cumulative discounted should end at NPV", i)
		assert.Len(t, res.Series.Years, a.HorizonYears)
	}
}

func TestProjectCashflows_NPVDecreasesWithDiscountRate(t *testing.T) {
	a := flatAssumptions()
	var prev *decimal.Decimal
	for _, rate := range []string{"0", "0.02", "0.05", "0.08", "0.12", "0.2", "0.35"} {
		a.DiscountRate = dec(rate)
		res, err := ProjectCashflows(a)
		require.NoError(t, err)
		if prev != nil {
			assert.True(t, res.NPV.LessThan(*prev), "NPV at %s (%s) should be below %s", rate, res.NPV, *prev)
		}
		npv := res.NPV
		prev = &npv
	}
}

func TestProjectCashflows_FlatPaybackBoundary(t *testing.T) {
	res, err := ProjectCashflows(flatAssumptions())
	require.NoError(t, err)

	for _, y := range res.Series.Years {
		require.True(t, y.FreeCashFlow.Equal(dec("250000")), "year %d fcf %s", y.Year, y.FreeCashFlow)
	}
	assert.True(t, res.Series.Years[2].CumulativeCashFlow.Equal(dec("-250000")))
	assert.True(t, res.Series.Years[3].CumulativeCashFlow.Equal(decimal.Zero))
	assert.True(t, res.SimplePayback.Reached)
	assert.True(t, res.SimplePayback.Years.Equal(dec("4")), "payback %s", res.SimplePayback.Years)

	// discounted payback lags the simple one
	assert.True(t, res.DiscountedPayback.Reached)
	assert.True(t, res.DiscountedPayback.Years.GreaterThan(res.SimplePayback.Years))

	// 10 x 250k on 1M
	assert.True(t, res.ROI.Equal(dec("150")), "ROI %s", res.ROI)
	assert.True(t, res.IRRConverged)
	assert.InDelta(t, 21.41, res.IRR.InexactFloat64(), 0.01)
}

func TestProjectCashflows_ProfitabilityIndex(t *testing.T) {
	res, err := ProjectCashflows(referenceAssumptions())
	require.NoError(t, err)
	// PI = (NPV + capex) / capex
	expected := res.NPV.Add(dec("50000000")).Div(dec("50000000"))
	assert.InDelta(t, expected.InexactFloat64(), res.ProfitabilityIndex.InexactFloat64(), 1e-12)
}

func TestProjectCashflows_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(a *domain.FinancialAssumptions)
		msg    string
	}{
		{"zero capex", func(a *domain.FinancialAssumptions) { a.Capex = decimal.Zero }, "capex must be positive"},
		{"negative capex", func(a *domain.FinancialAssumptions) { a.Capex = dec("-1") }, "capex must be positive"},
		{"zero depreciation", func(a *domain.FinancialAssumptions) { a.DepreciationYears = 0 }, "depreciation years"},
		{"zero horizon", func(a *domain.FinancialAssumptions) { a.HorizonYears = 0 }, "horizon years"},
		{"occupancy above one", func(a *domain.FinancialAssumptions) { a.OccupancyRamp[3] = dec("1.2") }, "occupancy ramp year 4"},
		{"negative occupancy", func(a *domain.FinancialAssumptions) { a.OccupancyRamp[0] = dec("-0.1") }, "occupancy ramp year 1"},
		{"discount rate -100%", func(a *domain.FinancialAssumptions) { a.DiscountRate = dec("-1") }, "discount rate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := referenceAssumptions()
			tc.mutate(&a)
			res, err := ProjectCashflows(a)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrInvalidAssumptions))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestProjectCashflows_DoesNotMutateInput(t *testing.T) {
	a := referenceAssumptions()
	before := a.OccupancyRamp[0]
	_, err := ProjectCashflows(a)
	require.NoError(t, err)
	assert.True(t, a.OccupancyRamp[0].Equal(before))
	assert.Len(t, a.OccupancyRamp, 10)
}

func TestProjectCashflows_Deterministic(t *testing.T) {
	first, err := ProjectCashflows(referenceAssumptions())
	require.NoError(t, err)
	second, err := ProjectCashflows(referenceAssumptions())
	require.NoError(t, err)
	assert.True(t, first.NPV.Equal(second.NPV))
	assert.True(t, first.IRR.Equal(second.IRR))
	assert.Equal(t, first.IRRIterations, second.IRRIterations)
}
