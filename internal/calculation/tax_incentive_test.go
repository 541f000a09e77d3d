package calculation

import (
	"errors"
	"testing"

	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// holidayInput: 150,000 taxable income every year, a three year holiday from a 25% rate
func holidayInput() domain.TaxScenarioInput {
	a := flatAssumptions()
	a.TaxRate = dec("0.25")
	return domain.TaxScenarioInput{
		Assumptions: a,
		Incentive: domain.TaxIncentive{
			HolidayYears:           3,
			HolidayRate:            dec("0"),
			ImportDutyExemptionPct: dec("0.1"),
			LandSubsidyPct:         dec("0.05"),
		},
		StandardRate: dec("0.25"),
	}
}

func TestCompareTaxScenarios_Holiday(t *testing.T) {
	res, err := CompareTaxScenarios(holidayInput())
	require.NoError(t, err)
	require.Len(t, res.Years, 10)

	for _, y := range res.Years {
		assert.True(t, y.TaxWithoutIncentive.Equal(dec("37500")), "year %d baseline tax %s", y.Year, y.TaxWithoutIncentive)
		if y.Year <= 3 {
			assert.True(t, y.RateWithIncentive.IsZero(), "year %d rate", y.Year)
			assert.True(t, y.TaxWithIncentive.IsZero(), "year %d tax", y.Year)
			assert.True(t, y.Savings.Equal(dec("37500")), "year %d savings", y.Year)
			continue
		}
		assert.True(t, y.RateWithIncentive.Equal(dec("0.25")), "year %d rate", y.Year)
		assert.True(t, y.Savings.IsZero(), "year %d savings %s", y.Year, y.Savings)
	}

	assert.InDelta(t, 96641.137022, res.TaxSavingsNPV.InexactFloat64(), 1e-3)
	assert.True(t, res.ImportDutyExemption.Equal(dec("100000")))
	assert.True(t, res.LandSubsidy.Equal(dec("50000")))
	assert.True(t, res.TotalIncentiveValue.Equal(res.TaxSavingsNPV.Add(dec("150000"))))

	assert.True(t, res.TotalTaxDelta.Equal(dec("-112500")), "total tax delta %s", res.TotalTaxDelta)
	assert.InDelta(t, res.TaxSavingsNPV.InexactFloat64(), res.NPVDelta.InexactFloat64(), 1e-6)
	assert.True(t, res.IRRDeltaValid)
	assert.True(t, res.IRRDelta.IsPositive(), "IRR delta %s", res.IRRDelta)
	assert.True(t, res.WithIncentive.IRR.Converged)
	assert.True(t, res.WithoutIncentive.IRR.Converged)
}

func TestCompareTaxScenarios_HolidayBeyondHorizon(t *testing.T) {
	in := holidayInput()
	in.Incentive.HolidayYears = 40
	res, err := CompareTaxScenarios(in)
	require.NoError(t, err)
	assert.True(t, res.WithIncentive.TotalTax.IsZero())
	assert.True(t, res.TotalTaxDelta.Equal(dec("-375000")))
}

func TestCompareTaxScenarios_NoIncentiveIsNeutral(t *testing.T) {
	in := holidayInput()
	in.Incentive = domain.TaxIncentive{HolidayYears: 5, HolidayRate: dec("0.25")}
	res, err := CompareTaxScenarios(in)
	require.NoError(t, err)

	assert.True(t, res.TaxSavingsNPV.IsZero())
	assert.True(t, res.TotalIncentiveValue.IsZero())
	assert.True(t, res.NPVDelta.IsZero(), "NPV delta %s", res.NPVDelta)
	assert.True(t, res.IRRDelta.IsZero(), "IRR delta %s", res.IRRDelta)
	assert.True(t, res.TotalTaxDelta.IsZero())
}

func TestCompareTaxScenarios_IRRDeltaNeedsBothBranchesConverged(t *testing.T) {
	in := holidayInput()
	in.Assumptions = referenceAssumptions()
	in.StandardRate = dec("0.25")
	res, err := CompareTaxScenarios(in)
	require.NoError(t, err)

	assert.False(t, res.WithIncentive.IRR.Converged)
	assert.False(t, res.WithoutIncentive.IRR.Converged)
	assert.False(t, res.IRRDeltaValid)
	assert.True(t, res.IRRDelta.IsZero(), "IRR delta %s", res.IRRDelta)
	// NPV and incentive values are still reported
	assert.True(t, res.ImportDutyExemption.Equal(dec("5000000")))
	assert.False(t, res.TotalIncentiveValue.IsZero())
}

func TestCompareTaxScenarios_StandardRateOverridesAssumptions(t *testing.T) {
	// the baseline branch uses StandardRate, not Assumptions.TaxRate
	in := holidayInput()
	in.Assumptions.TaxRate = dec("0.5")
	in.Incentive.HolidayYears = 0
	res, err := CompareTaxScenarios(in)
	require.NoError(t, err)
	assert.True(t, res.WithoutIncentive.TotalTax.Equal(dec("375000")), "baseline tax %s", res.WithoutIncentive.TotalTax)
	assert.True(t, res.TotalTaxDelta.IsZero())
}

func TestCompareTaxScenarios_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(in *domain.TaxScenarioInput)
		target error
	}{
		{"negative holiday", func(in *domain.TaxScenarioInput) { in.Incentive.HolidayYears = -1 }, ErrInvalidIncentive},
		{"holiday rate above one", func(in *domain.TaxScenarioInput) { in.Incentive.HolidayRate = dec("1.5") }, ErrInvalidIncentive},
		{"negative standard rate", func(in *domain.TaxScenarioInput) { in.StandardRate = dec("-0.1") }, ErrInvalidIncentive},
		{"import duty above one", func(in *domain.TaxScenarioInput) { in.Incentive.ImportDutyExemptionPct = dec("2") }, ErrInvalidIncentive},
		{"bad assumptions", func(in *domain.TaxScenarioInput) { in.Assumptions.Capex = dec("0") }, ErrInvalidAssumptions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := holidayInput()
			tc.mutate(&in)
			res, err := CompareTaxScenarios(in)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}
